// nexo-escolar/internal/handlers/installation_handler.go

package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// InstallationInput es el alta/edición de un sector del plano.
type InstallationInput struct {
	Name    string `json:"name" binding:"required"`
	GridRow int    `json:"gridRow"`
	GridCol int    `json:"gridCol"`
	RowSpan int    `json:"rowSpan"`
	ColSpan int    `json:"colSpan"`
}

// ListInstallationsHandler devuelve el plano completo del edificio.
func ListInstallationsHandler(c *gin.Context) {
	var installations []models.Installation
	if err := config.DB.Order("grid_row asc, grid_col asc").Find(&installations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch installations"})
		return
	}

	if installations == nil {
		installations = make([]models.Installation, 0)
	}
	c.JSON(http.StatusOK, installations)
}

// GetInstallationHandler devuelve un sector con sus incidencias abiertas.
func GetInstallationHandler(c *gin.Context) {
	var installation models.Installation
	if err := config.DB.First(&installation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installation not found"})
		return
	}

	var openIncidents []models.Incident
	config.DB.Where("installation_id = ? AND status <> ?", installation.ID, models.IncidentResolved).
		Order("created_at desc").
		Find(&openIncidents)

	c.JSON(http.StatusOK, gin.H{"installation": installation, "openIncidents": openIncidents})
}

// CreateInstallationHandler agrega un sector al plano.
func CreateInstallationHandler(c *gin.Context) {
	var input InstallationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	installation := models.Installation{
		Name:    input.Name,
		Status:  models.InstallationOK,
		GridRow: input.GridRow,
		GridCol: input.GridCol,
		RowSpan: max(input.RowSpan, 1),
		ColSpan: max(input.ColSpan, 1),
	}

	if err := config.DB.Create(&installation).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ya existe un sector con ese nombre"})
		return
	}

	c.JSON(http.StatusCreated, installation)
}

// UpdateInstallationHandler edita nombre y posición de un sector.
// Renombrar no afecta a las incidencias: la relación es por ID.
func UpdateInstallationHandler(c *gin.Context) {
	var input InstallationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var installation models.Installation
	if err := config.DB.First(&installation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installation not found"})
		return
	}

	updates := map[string]interface{}{
		"name":     input.Name,
		"grid_row": input.GridRow,
		"grid_col": input.GridCol,
		"row_span": max(input.RowSpan, 1),
		"col_span": max(input.ColSpan, 1),
	}
	if err := config.DB.Model(&installation).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not update installation"})
		return
	}

	c.JSON(http.StatusOK, installation)
}

// DeleteInstallationHandler elimina un sector del plano. Se rechaza mientras
// tenga incidencias sin resolver para no dejarlas huérfanas.
func DeleteInstallationHandler(c *gin.Context) {
	var installation models.Installation
	if err := config.DB.First(&installation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installation not found"})
		return
	}

	var openCount int64
	config.DB.Model(&models.Incident{}).
		Where("installation_id = ? AND status <> ?", installation.ID, models.IncidentResolved).
		Count(&openCount)
	if openCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "El sector tiene incidencias abiertas"})
		return
	}

	if err := config.DB.Delete(&installation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete installation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Installation deleted"})
}
