// nexo-escolar/internal/handlers/calendar_handler.go

package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventRequest es el cuerpo de alta/edición de un evento del calendario.
type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time"`
	Color       string    `json:"color"`
}

// GetEventsHandler devuelve los eventos del calendario, próximos primero.
func GetEventsHandler(c *gin.Context) {
	query := config.DB.Preload("Organizer").Preload("Participants").Order("start_time asc")

	if from := c.Query("from"); from != "" {
		query = query.Where("start_time >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_time <= ?", to)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	if events == nil {
		events = make([]models.Event, 0)
	}
	c.JSON(http.StatusOK, events)
}

// CreateEventHandler crea un evento nuevo; el organizador queda inscripto.
func CreateEventHandler(c *gin.Context) {
	currentUserID := c.GetUint("user_id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event := models.Event{
		OrganizerID: currentUserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		participant := models.EventParticipant{EventID: event.ID, UserID: currentUserID}
		return tx.Create(&participant).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEventHandler edita un evento propio.
func UpdateEventHandler(c *gin.Context) {
	currentUserID := c.GetUint("user_id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.OrganizerID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the organizer of this event"})
		return
	}

	err := config.DB.Model(&event).Updates(models.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEventHandler borra un evento propio.
func DeleteEventHandler(c *gin.Context) {
	currentUserID := c.GetUint("user_id")

	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.OrganizerID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the organizer of this event"})
		return
	}

	if err := config.DB.Select("Participants").Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// JoinEventHandler inscribe al usuario autenticado. La clave compuesta hace
// que inscribirse dos veces sea un conflicto, no un duplicado. Los delegados
// estudiantiles reciben el aviso de cada inscripción nueva.
func JoinEventHandler(c *gin.Context) {
	currentUserID := c.GetUint("user_id")

	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var existing models.EventParticipant
	err := config.DB.Where("event_id = ? AND user_id = ?", event.ID, currentUserID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ya estás inscripto en este evento"})
		return
	}

	var notifs []models.Notification
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		participant := models.EventParticipant{EventID: event.ID, UserID: currentUserID}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}

		var joiner models.User
		if err := tx.First(&joiner, currentUserID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStudentRep, currentUserID,
			models.NotifNewParticipant,
			joiner.FullName+" se inscribió a \""+event.Title+"\"",
			event.Title)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join event"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, gin.H{"message": "Inscripción registrada"})
}

// LeaveEventHandler da de baja la inscripción del usuario autenticado.
func LeaveEventHandler(c *gin.Context) {
	currentUserID := c.GetUint("user_id")

	result := config.DB.
		Where("event_id = ? AND user_id = ?", c.Param("id"), currentUserID).
		Delete(&models.EventParticipant{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No estabas inscripto en este evento"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inscripción cancelada"})
}
