// nexo-escolar/models/task.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados de una tarea diaria del personal.
const (
	TaskPending   = "pendiente"
	TaskCompleted = "completada"
)

// DailyTask es una tarea operativa del personal de mantenimiento
// (limpieza, reparaciones, preparación de espacios).
type DailyTask struct {
	gorm.Model
	Title         string     `json:"title" gorm:"not null"`
	Location      string     `json:"location"`
	Type          string     `json:"type" gorm:"type:varchar(50)"`
	StartTime     string     `json:"startTime"` // "HH:MM"
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:'pendiente'"`
	CreatedByID   uint       `json:"createdById"`
	CreatedBy     User       `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	CompletedByID *uint      `json:"completedById,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// MaintenanceHistoryItem queda registrado al completarse una tarea:
// exactamente un ítem por tarea completada.
type MaintenanceHistoryItem struct {
	gorm.Model
	TaskID      uint      `json:"taskId" gorm:"not null;index"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Responsible string    `json:"responsible"` // nombre completo de quien la completó
	CompletedAt time.Time `json:"completedAt"`
}
