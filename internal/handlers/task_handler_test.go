package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ciclo completo de una tarea: A la crea y B recibe el aviso; A la completa,
// queda exactamente un ítem en el historial a nombre de A y B vuelve a
// enterarse.
func TestTaskLifecycle(t *testing.T) {
	setupTestDB(t)

	a := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	b := createUser(t, "mant2", "Nora Paz", models.RoleStaff)

	c, w := jsonContext(t, a, CreateTaskInput{
		Title:     "Limpiar patio",
		Location:  "Patio",
		Type:      "limpieza",
		StartTime: "08:00",
	})
	CreateTaskHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task models.DailyTask
	require.NoError(t, config.DB.First(&task).Error)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, a.ID, task.CreatedByID)

	notifsB := notificationsFor(t, b.ID)
	require.Len(t, notifsB, 1)
	assert.Equal(t, models.NotifNewAssignment, notifsB[0].Type)
	assert.Empty(t, notificationsFor(t, a.ID))

	c, w = jsonContext(t, a, nil)
	withParam(c, "id", strconv.Itoa(int(task.ID)))
	CompleteTaskHandler(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&task, task.ID).Error)
	assert.Equal(t, models.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedByID)
	assert.Equal(t, a.ID, *task.CompletedByID)
	assert.NotNil(t, task.CompletedAt)

	var history []models.MaintenanceHistoryItem
	require.NoError(t, config.DB.Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, task.ID, history[0].TaskID)
	assert.Equal(t, "Limpiar patio", history[0].Title)
	assert.Equal(t, "Mario Luna", history[0].Responsible)

	notifsB = notificationsFor(t, b.ID)
	require.Len(t, notifsB, 2)
	assert.Equal(t, models.NotifTaskCompleted, notifsB[1].Type)
}

func TestCompleteTaskTwiceIsConflict(t *testing.T) {
	setupTestDB(t)

	a := createUser(t, "mant1", "Mario Luna", models.RoleStaff)

	task := models.DailyTask{Title: "Cortar pasto", Status: models.TaskPending, CreatedByID: a.ID}
	require.NoError(t, config.DB.Create(&task).Error)

	complete := func() int {
		c, w := jsonContext(t, a, nil)
		withParam(c, "id", strconv.Itoa(int(task.ID)))
		CompleteTaskHandler(c)
		return w.Code
	}

	require.Equal(t, http.StatusOK, complete())
	assert.Equal(t, http.StatusConflict, complete())

	// El segundo intento no agrega otro ítem al historial.
	var count int64
	config.DB.Model(&models.MaintenanceHistoryItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
