// nexo-escolar/internal/handlers/shift_handler.go

package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateShiftRequestInput es el pedido de intercambio de turno.
type CreateShiftRequestInput struct {
	TargetID      uint   `json:"targetId" binding:"required"`
	RequesterDate string `json:"requesterDate" binding:"required"` // "2006-01-02"
	TargetDate    string `json:"targetDate" binding:"required"`
	Reason        string `json:"reason"`
}

// CreateShiftRequestHandler crea una solicitud de cambio de turno y le avisa
// a la única contraparte.
func CreateShiftRequestHandler(c *gin.Context) {
	var input CreateShiftRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	requesterID := c.GetUint("user_id")
	if input.TargetID == requesterID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No podés pedirte un cambio a vos mismo"})
		return
	}

	requesterDate, err := time.Parse("2006-01-02", input.RequesterDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requesterDate, expected YYYY-MM-DD"})
		return
	}
	targetDate, err := time.Parse("2006-01-02", input.TargetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid targetDate, expected YYYY-MM-DD"})
		return
	}

	var target models.User
	if err := config.DB.First(&target, input.TargetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}
	if target.Role != models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraparte debe ser del personal"})
		return
	}

	request := models.ShiftChangeRequest{
		RequesterID:   requesterID,
		TargetID:      input.TargetID,
		RequesterDate: requesterDate,
		TargetDate:    targetDate,
		Reason:        input.Reason,
		Status:        models.ShiftPending,
	}

	var notifs []models.Notification
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		var requester models.User
		if err := tx.First(&requester, requesterID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyUsers(tx, []models.User{target}, requesterID,
			models.NotifShiftRequest,
			requester.FullName+" te propuso un cambio de turno",
			input.Reason)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shift request"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusCreated, request)
}

// ListShiftRequestsHandler lista las solicitudes en las que participa el
// usuario autenticado, como solicitante o como contraparte.
func ListShiftRequestsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var requests []models.ShiftChangeRequest
	err := config.DB.
		Preload("Requester").
		Preload("Target").
		Where("requester_id = ? OR target_id = ?", userID, userID).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shift requests"})
		return
	}

	if requests == nil {
		requests = make([]models.ShiftChangeRequest, 0)
	}
	c.JSON(http.StatusOK, requests)
}

// RespondShiftRequestInput es la respuesta de la contraparte.
type RespondShiftRequestInput struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// RespondShiftRequestHandler acepta o rechaza una solicitud pendiente.
// Solo la contraparte puede responder, y el solicitante recibe el aviso.
func RespondShiftRequestHandler(c *gin.Context) {
	var input RespondShiftRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var request models.ShiftChangeRequest
	if err := config.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift request not found"})
		return
	}

	actorID := c.GetUint("user_id")
	if request.TargetID != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo la contraparte puede responder"})
		return
	}
	if request.Status != models.ShiftPending {
		c.JSON(http.StatusConflict, gin.H{"error": "La solicitud ya fue respondida"})
		return
	}

	newStatus := models.ShiftRejected
	text := "Tu cambio de turno fue rechazado"
	if *input.Accepted {
		newStatus = models.ShiftAccepted
		text = "Tu cambio de turno fue aceptado"
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", newStatus).Error; err != nil {
			return err
		}

		var requester models.User
		if err := tx.First(&requester, request.RequesterID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyUsers(tx, []models.User{requester}, actorID,
			models.NotifShiftResponse, text, request.Reason)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to respond to shift request"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, request)
}
