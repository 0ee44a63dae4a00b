// nexo-escolar/models/installation.go

package models

import "gorm.io/gorm"

// Estados operativos de una instalación del edificio.
const (
	InstallationOK           = "ok"
	InstallationMaintenance  = "maintenance"
	InstallationOutOfService = "out_of_service"
)

// Installation es un sector del plano editable del colegio (aulas, baños,
// patio, laboratorios). Las incidencias la referencian por ID, nunca por
// nombre: renombrar un sector no rompe sus incidencias asociadas.
type Installation struct {
	gorm.Model
	Name   string `json:"name" gorm:"unique;not null"`
	Status string `json:"status" gorm:"type:varchar(20);not null;default:'ok'"`

	// Descripción de la última incidencia que la dejó fuera de servicio o en
	// mantenimiento; se limpia cuando vuelve a estar operativa.
	Details string `json:"details"`

	// Posición y tamaño dentro de la grilla del plano.
	GridRow int `json:"gridRow"`
	GridCol int `json:"gridCol"`
	RowSpan int `json:"rowSpan" gorm:"default:1"`
	ColSpan int `json:"colSpan" gorm:"default:1"`
}
