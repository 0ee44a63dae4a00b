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

func createInstallation(t *testing.T, name string) models.Installation {
	t.Helper()

	installation := models.Installation{
		Name: name, Status: models.InstallationOK, GridRow: 1, GridCol: 1, RowSpan: 1, ColSpan: 1,
	}
	require.NoError(t, config.DB.Create(&installation).Error)
	return installation
}

func TestReportFromPanelHighPriorityTakesSectorOutOfService(t *testing.T) {
	setupTestDB(t)

	reporter := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	colleague := createUser(t, "mant2", "Nora Paz", models.RoleStaff)
	installation := createInstallation(t, "Baños Planta Baja")

	c, w := jsonContext(t, reporter, ReportFromPanelInput{
		Status:      models.InstallationOutOfService,
		Description: "Caño roto, agua en el piso",
	})
	withParam(c, "id", strconv.Itoa(int(installation.ID)))
	ReportFromPanelHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var incident models.Incident
	require.NoError(t, config.DB.First(&incident).Error)
	assert.Equal(t, models.PriorityAlta, incident.Priority)
	assert.Equal(t, models.IncidentOpen, incident.Status)
	assert.Equal(t, installation.ID, incident.InstallationID)

	require.NoError(t, config.DB.First(&installation, installation.ID).Error)
	assert.Equal(t, models.InstallationOutOfService, installation.Status)
	assert.Equal(t, "Caño roto, agua en el piso", installation.Details)

	// El resto del personal se entera; quien reporta, no.
	assert.Len(t, notificationsFor(t, colleague.ID), 1)
	assert.Equal(t, models.NotifIncidentReported, notificationsFor(t, colleague.ID)[0].Type)
	assert.Empty(t, notificationsFor(t, reporter.ID))
}

func TestReportFromPanelMediumPriorityLeavesMaintenance(t *testing.T) {
	setupTestDB(t)

	reporter := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	installation := createInstallation(t, "Aula 3")

	c, w := jsonContext(t, reporter, ReportFromPanelInput{
		Status:      models.InstallationMaintenance,
		Description: "Ventilador hace ruido",
	})
	withParam(c, "id", strconv.Itoa(int(installation.ID)))
	ReportFromPanelHandler(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var incident models.Incident
	require.NoError(t, config.DB.First(&incident).Error)
	assert.Equal(t, models.PriorityMedia, incident.Priority)

	require.NoError(t, config.DB.First(&installation, installation.ID).Error)
	assert.Equal(t, models.InstallationMaintenance, installation.Status)
}

func TestResolveLastOpenIncidentRestoresSector(t *testing.T) {
	setupTestDB(t)

	staff := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	installation := createInstallation(t, "Laboratorio")

	report := func(desc string) models.Incident {
		incident, _, err := createIncident(staff.ID, installation.ID, desc, models.PriorityAlta, "")
		require.NoError(t, err)
		return incident
	}

	first := report("Sin luz")
	second := report("Puerta trabada")

	resolve := func(id uint) {
		c, w := jsonContext(t, staff, UpdateIncidentStatusInput{Status: models.IncidentResolved})
		withParam(c, "id", strconv.Itoa(int(id)))
		UpdateIncidentStatusHandler(c)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Con una incidencia abierta restante, el sector sigue fuera de servicio.
	resolve(first.ID)
	require.NoError(t, config.DB.First(&installation, installation.ID).Error)
	assert.Equal(t, models.InstallationOutOfService, installation.Status)
	assert.NotEmpty(t, installation.Details)

	// Al resolver la última, vuelve a "ok" y la descripción se limpia.
	resolve(second.ID)
	require.NoError(t, config.DB.First(&installation, installation.ID).Error)
	assert.Equal(t, models.InstallationOK, installation.Status)
	assert.Empty(t, installation.Details)
}

func TestIncidentStatusTransitions(t *testing.T) {
	setupTestDB(t)

	staff := createUser(t, "mant1", "Mario Luna", models.RoleStaff)
	installation := createInstallation(t, "Patio")

	incident, _, err := createIncident(staff.ID, installation.ID, "Banco roto", models.PriorityBaja, "")
	require.NoError(t, err)

	update := func(status string) int {
		c, w := jsonContext(t, staff, UpdateIncidentStatusInput{Status: status})
		withParam(c, "id", strconv.Itoa(int(incident.ID)))
		UpdateIncidentStatusHandler(c)
		return w.Code
	}

	assert.Equal(t, http.StatusConflict, update(models.IncidentOpen)) // sin retrocesos
	assert.Equal(t, http.StatusOK, update(models.IncidentInProgress))
	assert.Equal(t, http.StatusConflict, update(models.IncidentOpen))
	assert.Equal(t, http.StatusOK, update(models.IncidentResolved))
	assert.Equal(t, http.StatusConflict, update(models.IncidentInProgress))
}

func TestCreateIncidentUnknownInstallation(t *testing.T) {
	setupTestDB(t)

	staff := createUser(t, "mant1", "Mario Luna", models.RoleStaff)

	c, w := jsonContext(t, staff, ReportFromPanelInput{
		Status:      models.InstallationMaintenance,
		Description: "Fantasma",
	})
	withParam(c, "id", "9999")
	ReportFromPanelHandler(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
