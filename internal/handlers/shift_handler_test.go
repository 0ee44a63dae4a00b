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

func TestShiftRequestNotifiesOnlyCounterpart(t *testing.T) {
	setupTestDB(t)

	requester := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	target := createUser(t, "mant2", "Nora Paz", models.RoleStaff)
	bystander := createUser(t, "mant3", "Oscar Gil", models.RoleStaff)

	c, w := jsonContext(t, requester, CreateShiftRequestInput{
		TargetID:      target.ID,
		RequesterDate: "2026-09-01",
		TargetDate:    "2026-09-03",
		Reason:        "Trámite personal",
	})
	CreateShiftRequestHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// La solicitud es uno a uno: el resto del personal no se entera.
	require.Len(t, notificationsFor(t, target.ID), 1)
	assert.Equal(t, models.NotifShiftRequest, notificationsFor(t, target.ID)[0].Type)
	assert.Empty(t, notificationsFor(t, bystander.ID))
	assert.Empty(t, notificationsFor(t, requester.ID))
}

func TestShiftRequestValidation(t *testing.T) {
	setupTestDB(t)

	requester := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)

	// Contraparte fuera del personal.
	c, w := jsonContext(t, requester, CreateShiftRequestInput{
		TargetID: student.ID, RequesterDate: "2026-09-01", TargetDate: "2026-09-03",
	})
	CreateShiftRequestHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Uno mismo no es contraparte válida.
	c, w = jsonContext(t, requester, CreateShiftRequestInput{
		TargetID: requester.ID, RequesterDate: "2026-09-01", TargetDate: "2026-09-03",
	})
	CreateShiftRequestHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondShiftRequest(t *testing.T) {
	setupTestDB(t)

	requester := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	target := createUser(t, "mant2", "Nora Paz", models.RoleStaff)

	request := models.ShiftChangeRequest{
		RequesterID: requester.ID, TargetID: target.ID, Status: models.ShiftPending,
	}
	require.NoError(t, config.DB.Create(&request).Error)

	accept := true
	respond := func(as models.User) int {
		c, w := jsonContext(t, as, RespondShiftRequestInput{Accepted: &accept})
		withParam(c, "id", strconv.Itoa(int(request.ID)))
		RespondShiftRequestHandler(c)
		return w.Code
	}

	// Solo la contraparte puede responder.
	assert.Equal(t, http.StatusForbidden, respond(requester))

	require.Equal(t, http.StatusOK, respond(target))
	require.NoError(t, config.DB.First(&request, request.ID).Error)
	assert.Equal(t, models.ShiftAccepted, request.Status)

	notifs := notificationsFor(t, requester.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifShiftResponse, notifs[0].Type)

	// Una solicitud respondida queda cerrada.
	assert.Equal(t, http.StatusConflict, respond(target))
}
