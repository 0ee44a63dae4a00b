// nexo-escolar/models/calendar.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Event es un evento del calendario institucional (actos, charlas, torneos).
type Event struct {
	gorm.Model
	OrganizerID uint      `json:"organizerId"`
	Organizer   User      `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:varchar(50)"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime" gorm:"not null"`
	EndTime     time.Time `json:"endTime"`
	Color       string    `json:"color"`

	Participants []EventParticipant `json:"participants,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`
}

// EventParticipant registra la inscripción de un usuario a un evento.
// La clave compuesta impide inscribirse dos veces al mismo evento.
type EventParticipant struct {
	EventID  uint      `json:"eventId" gorm:"primaryKey"`
	UserID   uint      `json:"userId" gorm:"primaryKey"`
	User     User      `json:"user" gorm:"foreignKey:UserID"`
	JoinedAt time.Time `json:"joinedAt" gorm:"autoCreateTime"`
}
