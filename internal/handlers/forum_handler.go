// nexo-escolar/internal/handlers/forum_handler.go

package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateThreadInput es el alta de un hilo de la comunidad.
type CreateThreadInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

// CreateThreadHandler crea un hilo. Todo hilo nace PENDING y espera moderación.
func CreateThreadHandler(c *gin.Context) {
	var input CreateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	thread := models.ForumThread{
		AuthorID: c.GetUint("user_id"),
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Status:   models.ThreadPending,
	}

	if err := config.DB.Create(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thread"})
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// isModerator determina quién puede moderar el foro.
func isModerator(role string) bool {
	return role == models.RoleDirector || role == models.RoleStudentRep
}

// ListThreadsHandler lista los hilos visibles: los moderadores ven todo,
// el resto ve los aprobados más los propios (en cualquier estado).
func ListThreadsHandler(c *gin.Context) {
	query := config.DB.Preload("Author").Order("created_at desc")

	if !isModerator(c.GetString("role")) {
		query = query.Where("status = ? OR author_id = ?", models.ThreadApproved, c.GetUint("user_id"))
	} else if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var threads []models.ForumThread
	if err := query.Find(&threads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch threads"})
		return
	}

	if threads == nil {
		threads = make([]models.ForumThread, 0)
	}
	c.JSON(http.StatusOK, threads)
}

// GetThreadHandler devuelve un hilo con sus respuestas.
func GetThreadHandler(c *gin.Context) {
	var thread models.ForumThread
	err := config.DB.
		Preload("Author").
		Preload("Replies.Author").
		First(&thread, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if thread.Status != models.ThreadApproved &&
		thread.AuthorID != c.GetUint("user_id") &&
		!isModerator(c.GetString("role")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "El hilo todavía no fue aprobado"})
		return
	}

	c.JSON(http.StatusOK, thread)
}

// CreateReplyHandler agrega una respuesta a un hilo aprobado y no bloqueado.
func CreateReplyHandler(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var thread models.ForumThread
	if err := config.DB.First(&thread, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if thread.Status != models.ThreadApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "El hilo todavía no fue aprobado"})
		return
	}
	if thread.Locked {
		c.JSON(http.StatusConflict, gin.H{"error": "El hilo está bloqueado"})
		return
	}

	reply := models.ForumReply{
		ThreadID: thread.ID,
		AuthorID: c.GetUint("user_id"),
		Content:  input.Content,
	}
	if err := config.DB.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	config.DB.Preload("Author").First(&reply, reply.ID)
	c.JSON(http.StatusCreated, reply)
}

// ModerateThreadInput es la decisión del moderador sobre un hilo pendiente.
type ModerateThreadInput struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ModerateThreadHandler aprueba o rechaza un hilo pendiente y se lo avisa
// al autor por notificación.
func ModerateThreadHandler(c *gin.Context) {
	var input ModerateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var thread models.ForumThread
	if err := config.DB.First(&thread, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if thread.Status != models.ThreadPending {
		c.JSON(http.StatusConflict, gin.H{"error": "El hilo ya fue moderado"})
		return
	}

	newStatus := models.ThreadRejected
	resultText := "Tu hilo \"" + thread.Title + "\" fue rechazado"
	if *input.Approved {
		newStatus = models.ThreadApproved
		resultText = "Tu hilo \"" + thread.Title + "\" fue aprobado"
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&thread).Update("status", newStatus).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.First(&author, thread.AuthorID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyUsers(tx, []models.User{author}, c.GetUint("user_id"),
			models.NotifThreadModerated, resultText, thread.Title)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate thread"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, thread)
}

// LockThreadHandler bloquea o desbloquea un hilo para nuevas respuestas.
func LockThreadHandler(c *gin.Context) {
	var input struct {
		Locked *bool `json:"locked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var thread models.ForumThread
	if err := config.DB.First(&thread, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if err := config.DB.Model(&thread).Update("locked", *input.Locked).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update thread"})
		return
	}

	c.JSON(http.StatusOK, thread)
}
