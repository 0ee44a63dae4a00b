// nexo-escolar/internal/handlers/incident_handler.go

package handlers

import (
	"net/http"
	"strconv"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListIncidentsHandler lista incidencias, abiertas primero.
func ListIncidentsHandler(c *gin.Context) {
	query := config.DB.Preload("Installation").Preload("Reporter").
		Order("status asc, created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if installationID := c.Query("installationId"); installationID != "" {
		query = query.Where("installation_id = ?", installationID)
	}

	var incidents []models.Incident
	if err := query.Find(&incidents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch incidents"})
		return
	}

	if incidents == nil {
		incidents = make([]models.Incident, 0)
	}
	c.JSON(http.StatusOK, incidents)
}

// CreateIncidentHandler registra una incidencia reportada a mano por el
// personal (formulario multipart, foto opcional). Una prioridad Alta saca
// al sector de servicio; el resto lo deja en mantenimiento. Todo ocurre en
// una sola transacción: la incidencia, el estado del sector y los avisos
// se confirman o se caen juntos.
func CreateIncidentHandler(c *gin.Context) {
	reporterID := c.GetUint("user_id")

	description := c.PostForm("description")
	priority := c.PostForm("priority")
	installationIDStr := c.PostForm("installationId")

	if description == "" || installationIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description e installationId son obligatorios"})
		return
	}
	if !models.ValidIncidentPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority: " + priority})
		return
	}

	installationID, err := strconv.ParseUint(installationIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installationId"})
		return
	}

	photoURL := ""
	if file, err := c.FormFile("photo"); err == nil {
		photoURL, err = saveUploadedFile(c, file, "incidents")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not save photo: " + err.Error()})
			return
		}
	}

	incident, notifs, err := createIncident(reporterID, uint(installationID), description, priority, photoURL)
	if err != nil {
		status := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to create incident: " + err.Error()})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusCreated, incident)
}

// ReportFromPanelInput es el reporte rápido desde el detalle de un sector:
// el botón de estado presionado determina la prioridad del sistema.
type ReportFromPanelInput struct {
	Status      string `json:"status" binding:"required"` // maintenance | out_of_service
	Description string `json:"description" binding:"required"`
}

// ReportFromPanelHandler levanta una incidencia desde el plano del edificio.
func ReportFromPanelHandler(c *gin.Context) {
	var input ReportFromPanelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var priority string
	switch input.Status {
	case models.InstallationOutOfService:
		priority = models.PriorityAlta
	case models.InstallationMaintenance:
		priority = models.PriorityMedia
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + input.Status})
		return
	}

	installationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installation ID"})
		return
	}

	incident, notifs, err := createIncident(c.GetUint("user_id"), uint(installationID), input.Description, priority, "")
	if err != nil {
		status := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to create incident: " + err.Error()})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusCreated, incident)
}

// createIncident concentra el alta: incidencia nueva, estado del sector y
// aviso al resto del personal, todo dentro de la misma transacción.
func createIncident(reporterID, installationID uint, description, priority, photoURL string) (models.Incident, []models.Notification, error) {
	incident := models.Incident{
		Description:    description,
		InstallationID: installationID,
		Priority:       priority,
		Status:         models.IncidentOpen,
		PhotoURL:       photoURL,
		ReporterID:     reporterID,
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var installation models.Installation
		if err := tx.First(&installation, installationID).Error; err != nil {
			return err
		}

		if err := tx.Create(&incident).Error; err != nil {
			return err
		}

		newStatus := models.InstallationMaintenance
		if priority == models.PriorityAlta {
			newStatus = models.InstallationOutOfService
		}
		updates := map[string]interface{}{"status": newStatus, "details": description}
		if err := tx.Model(&installation).Updates(updates).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStaff, reporterID,
			models.NotifIncidentReported,
			"Nueva incidencia en "+installation.Name,
			description)
		return err
	})
	if err != nil {
		return models.Incident{}, nil, err
	}
	return incident, notifs, nil
}

// UpdateIncidentStatusInput es el cambio de estado de una incidencia.
type UpdateIncidentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateIncidentStatusHandler avanza el ciclo de vida de una incidencia.
// Al resolverse la última incidencia abierta de un sector, el sector vuelve
// a "ok" y su descripción de incidencia se limpia, en la misma transacción.
func UpdateIncidentStatusHandler(c *gin.Context) {
	var input UpdateIncidentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var incident models.Incident
	if err := config.DB.First(&incident, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}

	if !validIncidentTransition(incident.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Transición inválida: " + incident.Status + " -> " + input.Status})
		return
	}

	actorID := c.GetUint("user_id")
	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&incident).Update("status", input.Status).Error; err != nil {
			return err
		}

		if input.Status != models.IncidentResolved {
			return nil
		}

		var installation models.Installation
		if err := tx.First(&installation, incident.InstallationID).Error; err != nil {
			return err
		}

		// ¿Quedan incidencias sin resolver para este sector?
		var openCount int64
		if err := tx.Model(&models.Incident{}).
			Where("installation_id = ? AND status <> ?", incident.InstallationID, models.IncidentResolved).
			Count(&openCount).Error; err != nil {
			return err
		}

		if openCount == 0 {
			updates := map[string]interface{}{"status": models.InstallationOK, "details": ""}
			if err := tx.Model(&installation).Updates(updates).Error; err != nil {
				return err
			}
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStaff, actorID,
			models.NotifIncidentResolved,
			"Incidencia resuelta en "+installation.Name,
			incident.Description)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, incident)
}

func validIncidentTransition(from, to string) bool {
	switch from {
	case models.IncidentOpen:
		return to == models.IncidentInProgress || to == models.IncidentResolved
	case models.IncidentInProgress:
		return to == models.IncidentResolved
	}
	return false
}
