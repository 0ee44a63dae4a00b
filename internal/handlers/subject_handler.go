package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// ListSubjectsHandler lista las materias, con filtro opcional por carrera.
func ListSubjectsHandler(c *gin.Context) {
	query := config.DB.Order("year asc, name asc")
	if careerID := c.Query("careerId"); careerID != "" {
		query = query.Where("career_id = ?", careerID)
	}

	var subjects []models.Subject
	if err := query.Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch subjects"})
		return
	}

	if subjects == nil {
		subjects = make([]models.Subject, 0)
	}
	c.JSON(http.StatusOK, subjects)
}

// CreateSubjectHandler da de alta una materia.
func CreateSubjectHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		CareerID *uint  `json:"careerId"`
		Year     int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	subject := models.Subject{Name: input.Name, CareerID: input.CareerID, Year: input.Year}
	if err := config.DB.Create(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subject"})
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// ListCareersHandler lista las carreras.
func ListCareersHandler(c *gin.Context) {
	var careers []models.Career
	if err := config.DB.Order("name asc").Find(&careers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch careers"})
		return
	}

	if careers == nil {
		careers = make([]models.Career, 0)
	}
	c.JSON(http.StatusOK, careers)
}
