// nexo-escolar/internal/handlers/task_handler.go

package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTaskInput es el alta de una tarea diaria del personal.
type CreateTaskInput struct {
	Title     string `json:"title" binding:"required"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	StartTime string `json:"startTime"` // "HH:MM"
}

// CreateTaskHandler crea una tarea pendiente y avisa al resto del personal.
func CreateTaskHandler(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	actorID := c.GetUint("user_id")
	task := models.DailyTask{
		Title:       input.Title,
		Location:    input.Location,
		Type:        input.Type,
		StartTime:   input.StartTime,
		Status:      models.TaskPending,
		CreatedByID: actorID,
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStaff, actorID,
			models.NotifNewAssignment,
			"Nueva tarea: "+task.Title,
			task.Location)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusCreated, task)
}

// ListTasksHandler lista las tareas del día, pendientes primero.
func ListTasksHandler(c *gin.Context) {
	query := config.DB.Preload("CreatedBy").Order("status desc, start_time asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.DailyTask
	if err := query.Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch tasks"})
		return
	}

	if tasks == nil {
		tasks = make([]models.DailyTask, 0)
	}
	c.JSON(http.StatusOK, tasks)
}

// CompleteTaskHandler marca una tarea como completada. Deja exactamente un
// registro en el historial de mantenimiento con el nombre del responsable y
// avisa al resto del personal. Completar dos veces es un conflicto.
func CompleteTaskHandler(c *gin.Context) {
	actorID := c.GetUint("user_id")

	var task models.DailyTask
	if err := config.DB.First(&task, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if task.Status != models.TaskPending {
		c.JSON(http.StatusConflict, gin.H{"error": "La tarea ya fue completada"})
		return
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var actor models.User
		if err := tx.First(&actor, actorID).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":          models.TaskCompleted,
			"completed_by_id": actorID,
			"completed_at":    now,
		}
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		history := models.MaintenanceHistoryItem{
			TaskID:      task.ID,
			Title:       task.Title,
			Location:    task.Location,
			Responsible: actor.FullName,
			CompletedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStaff, actorID,
			models.NotifTaskCompleted,
			actor.FullName+" completó la tarea: "+task.Title,
			task.Location)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, task)
}

// ListMaintenanceHistoryHandler devuelve el historial de mantenimiento.
func ListMaintenanceHistoryHandler(c *gin.Context) {
	var history []models.MaintenanceHistoryItem
	if err := config.DB.Order("completed_at desc").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch history"})
		return
	}

	if history == nil {
		history = make([]models.MaintenanceHistoryItem, 0)
	}
	c.JSON(http.StatusOK, history)
}
