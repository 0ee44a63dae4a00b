package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// UpsertGradeInput es una nota a cargar o corregir.
type UpsertGradeInput struct {
	StudentID uint    `json:"studentId" binding:"required"`
	SubjectID uint    `json:"subjectId" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Value     float64 `json:"value" binding:"required,gte=1,lte=10"`
}

// UpsertGradeHandler carga una nota. Cada (alumno, materia, tipo) admite una
// sola nota: volver a cargarla la corrige en lugar de duplicarla.
func UpsertGradeHandler(c *gin.Context) {
	var input UpsertGradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !models.ValidGradeType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade type: " + input.Type})
		return
	}

	grade := models.Grade{
		StudentID: input.StudentID,
		SubjectID: input.SubjectID,
		Type:      input.Type,
		Value:     input.Value,
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      input.Value,
			"updated_at": time.Now(),
		}),
	}).Create(&grade).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save grade: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, grade)
}

// ListGradesHandler lista notas filtradas por alumno o materia.
// Un alumno solo ve las propias.
func ListGradesHandler(c *gin.Context) {
	query := config.DB.Preload("Subject").Order("subject_id asc, type asc")

	if c.GetString("role") == models.RoleStudent {
		query = query.Where("student_id = ?", c.GetUint("user_id"))
	} else if studentID := c.Query("studentId"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	if subjectID := c.Query("subjectId"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	var grades []models.Grade
	if err := query.Find(&grades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch grades"})
		return
	}

	if grades == nil {
		grades = make([]models.Grade, 0)
	}
	c.JSON(http.StatusOK, grades)
}
