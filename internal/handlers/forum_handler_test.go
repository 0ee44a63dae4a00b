package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadBornPendingAndHiddenFromOthers(t *testing.T) {
	setupTestDB(t)

	author := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	other := createUser(t, "alu2", "Alumno Dos", models.RoleStudent)

	c, w := jsonContext(t, author, CreateThreadInput{
		Title:   "¿Alguien tiene los apuntes de ayer?",
		Content: "Falté por turno médico",
	})
	CreateThreadHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var thread models.ForumThread
	require.NoError(t, config.DB.First(&thread).Error)
	assert.Equal(t, models.ThreadPending, thread.Status)

	// El autor ve su hilo pendiente; otro alumno, no.
	c, w = getContext(t, author, "")
	ListThreadsHandler(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), thread.Title)

	c, w = getContext(t, other, "")
	ListThreadsHandler(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), thread.Title)
}

func TestModerateThreadNotifiesAuthor(t *testing.T) {
	setupTestDB(t)

	author := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	moderator := createUser(t, "del1", "Delia Navas", models.RoleStudentRep)

	thread := models.ForumThread{AuthorID: author.ID, Title: "Apuntes", Status: models.ThreadPending}
	require.NoError(t, config.DB.Create(&thread).Error)

	approve := true
	c, w := jsonContext(t, moderator, ModerateThreadInput{Approved: &approve})
	withParam(c, "id", strconv.Itoa(int(thread.ID)))
	ModerateThreadHandler(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&thread, thread.ID).Error)
	assert.Equal(t, models.ThreadApproved, thread.Status)

	notifs := notificationsFor(t, author.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifThreadModerated, notifs[0].Type)
	assert.Contains(t, notifs[0].Text, "aprobado")

	// Moderar dos veces es conflicto.
	c, w = jsonContext(t, moderator, ModerateThreadInput{Approved: &approve})
	withParam(c, "id", strconv.Itoa(int(thread.ID)))
	ModerateThreadHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReplyRequiresApprovedUnlockedThread(t *testing.T) {
	setupTestDB(t)

	author := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)

	thread := models.ForumThread{AuthorID: author.ID, Title: "Apuntes", Status: models.ThreadPending}
	require.NoError(t, config.DB.Create(&thread).Error)

	reply := func() int {
		c, w := jsonContext(t, author, gin.H{"content": "Yo los tengo"})
		withParam(c, "id", strconv.Itoa(int(thread.ID)))
		CreateReplyHandler(c)
		return w.Code
	}

	assert.Equal(t, http.StatusConflict, reply()) // pendiente

	require.NoError(t, config.DB.Model(&thread).Update("status", models.ThreadApproved).Error)
	assert.Equal(t, http.StatusCreated, reply())

	require.NoError(t, config.DB.Model(&thread).Update("locked", true).Error)
	assert.Equal(t, http.StatusConflict, reply()) // bloqueado

	var count int64
	config.DB.Model(&models.ForumReply{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
