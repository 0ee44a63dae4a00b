// nexo-escolar/models/shift.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados de una solicitud de cambio de turno.
const (
	ShiftPending  = "pendiente"
	ShiftAccepted = "aceptado"
	ShiftRejected = "rechazado"
)

// ShiftChangeRequest es un pedido de intercambio de turno entre dos
// miembros del personal. Siempre tiene una única contraparte.
type ShiftChangeRequest struct {
	gorm.Model
	RequesterID   uint      `json:"requesterId" gorm:"not null;index"`
	Requester     User      `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	TargetID      uint      `json:"targetId" gorm:"not null;index"`
	Target        User      `json:"target,omitempty" gorm:"foreignKey:TargetID"`
	RequesterDate time.Time `json:"requesterDate" gorm:"type:date"`
	TargetDate    time.Time `json:"targetDate" gorm:"type:date"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;default:'pendiente'"`
}
