// nexo-escolar/models/claim.go

package models

import "gorm.io/gorm"

// Estados del circuito de un reclamo estudiantil.
const (
	ClaimPending    = "pendiente"
	ClaimInProgress = "en_proceso"
	ClaimResolved   = "resuelta"
)

// Claim es un reclamo presentado por un alumno y gestionado por los
// delegados estudiantiles.
type Claim struct {
	gorm.Model
	AuthorID    uint   `json:"authorId"`
	Author      User   `json:"author" gorm:"foreignKey:AuthorID"`
	Category    string `json:"category" gorm:"type:varchar(50)"`
	Description string `json:"description" gorm:"type:text;not null"`
	Status      string `json:"status" gorm:"type:varchar(20);not null;default:'pendiente'"`
	Response    string `json:"response,omitempty" gorm:"type:text"`
}

// Announcement es un comunicado publicado por el centro de estudiantes.
type Announcement struct {
	gorm.Model
	AuthorID uint   `json:"authorId"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text"`
	Category string `json:"category" gorm:"type:varchar(50)"`
}
