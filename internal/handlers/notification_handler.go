package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler devuelve la bandeja del usuario autenticado,
// de la más reciente a la más vieja.
func ListNotificationsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notifications"})
		return
	}

	if notifications == nil {
		notifications = make([]models.Notification, 0)
	}

	c.JSON(http.StatusOK, notifications)
}

// UnreadCountHandler devuelve la cantidad de notificaciones sin leer.
func UnreadCountHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var count int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationsReadHandler marca como leídas todas las notificaciones
// del usuario autenticado y solo las suyas.
func MarkNotificationsReadHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}
