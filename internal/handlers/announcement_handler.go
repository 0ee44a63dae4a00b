package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// AnnouncementInput es el alta/edición de un comunicado del centro de estudiantes.
type AnnouncementInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

// ListAnnouncementsHandler lista los comunicados, del más nuevo al más viejo.
func ListAnnouncementsHandler(c *gin.Context) {
	var announcements []models.Announcement
	err := config.DB.Preload("Author").Order("created_at desc").Find(&announcements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch announcements"})
		return
	}

	if announcements == nil {
		announcements = make([]models.Announcement, 0)
	}
	c.JSON(http.StatusOK, announcements)
}

// CreateAnnouncementHandler publica un comunicado.
func CreateAnnouncementHandler(c *gin.Context) {
	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	announcement := models.Announcement{
		AuthorID: c.GetUint("user_id"),
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// UpdateAnnouncementHandler edita un comunicado propio.
func UpdateAnnouncementHandler(c *gin.Context) {
	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if announcement.AuthorID != c.GetUint("user_id") && c.GetString("role") != models.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sos el autor del comunicado"})
		return
	}

	updates := map[string]interface{}{
		"title":    input.Title,
		"content":  input.Content,
		"category": input.Category,
	}
	if err := config.DB.Model(&announcement).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update announcement"})
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// DeleteAnnouncementHandler elimina un comunicado propio.
func DeleteAnnouncementHandler(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if announcement.AuthorID != c.GetUint("user_id") && c.GetString("role") != models.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sos el autor del comunicado"})
		return
	}

	if err := config.DB.Delete(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
