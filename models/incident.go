// nexo-escolar/models/incident.go

package models

import "gorm.io/gorm"

// Prioridades de una incidencia.
const (
	PriorityAlta  = "Alta"
	PriorityMedia = "Media"
	PriorityBaja  = "Baja"
)

// Estados del ciclo de vida de una incidencia.
const (
	IncidentOpen       = "abierta"
	IncidentInProgress = "en_progreso"
	IncidentResolved   = "resuelta"
)

// Incident es un reporte de problema edilicio levantado por el personal.
// Su ciclo de vida arrastra el estado de la instalación asociada: una
// prioridad Alta la saca de servicio y resolver la última incidencia
// abierta la devuelve a "ok".
type Incident struct {
	gorm.Model
	Description    string       `json:"description" gorm:"type:text;not null"`
	InstallationID uint         `json:"installationId" gorm:"not null;index"`
	Installation   Installation `json:"installation,omitempty" gorm:"foreignKey:InstallationID"`
	Priority       string       `json:"priority" gorm:"type:varchar(10);not null"`
	Status         string       `json:"status" gorm:"type:varchar(20);not null;default:'abierta'"`
	PhotoURL       string       `json:"photoUrl,omitempty"`
	ReporterID     uint         `json:"reporterId"`
	Reporter       User         `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}

// ValidIncidentPriority valida la prioridad recibida.
func ValidIncidentPriority(p string) bool {
	switch p {
	case PriorityAlta, PriorityMedia, PriorityBaja:
		return true
	}
	return false
}
