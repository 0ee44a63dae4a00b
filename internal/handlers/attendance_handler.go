// nexo-escolar/internal/handlers/attendance_handler.go

package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BulkAttendanceEntry es el estado de un alumno dentro de una carga masiva.
type BulkAttendanceEntry struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// BulkAttendanceInput es la planilla completa de una materia en una fecha.
type BulkAttendanceInput struct {
	SubjectID uint                  `json:"subjectId" binding:"required"`
	Date      string                `json:"date" binding:"required"` // "2006-01-02"
	Entries   []BulkAttendanceEntry `json:"entries" binding:"required,min=1"`
}

// BulkSetAttendanceHandler carga la asistencia de una materia para una fecha.
// La tripla (alumno, materia, fecha) es única: una segunda carga para la misma
// materia y fecha pisa los estados anteriores en lugar de duplicar filas.
func BulkSetAttendanceHandler(c *gin.Context) {
	var input BulkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	for _, entry := range input.Entries {
		if !models.ValidAttendanceStatus(entry.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attendance status: " + entry.Status})
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range input.Entries {
			record := models.AttendanceRecord{
				StudentID: entry.StudentID,
				SubjectID: input.SubjectID,
				Date:      date,
				Status:    entry.Status,
			}
			// Re-cargar la planilla también descarta justificaciones viejas:
			// el estado y sus campos de justificación mutan como una unidad.
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"status":                 entry.Status,
					"justification_reason":   "",
					"justification_file_url": "",
					"updated_at":             time.Now(),
				}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attendance: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance saved", "count": len(input.Entries)})
}

// ListAttendanceHandler lista registros con filtros por alumno, materia y
// rango de fechas. Un alumno solo puede ver sus propios registros.
func ListAttendanceHandler(c *gin.Context) {
	query := config.DB.Preload("Subject").Order("date DESC, student_id asc")

	if c.GetString("role") == models.RoleStudent {
		query = query.Where("student_id = ?", c.GetUint("user_id"))
	} else if studentID := c.Query("studentId"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	if subjectID := c.Query("subjectId"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []models.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attendance"})
		return
	}

	if records == nil {
		records = make([]models.AttendanceRecord, 0)
	}
	c.JSON(http.StatusOK, records)
}

// RequestJustificationHandler pasa un registro propio de ABSENT a
// PENDING_JUSTIFICATION adjuntando el motivo y un certificado opcional.
func RequestJustificationHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var record models.AttendanceRecord
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
		return
	}

	if record.StudentID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No es tu registro de asistencia"})
		return
	}
	if record.Status != models.AttendanceAbsent {
		c.JSON(http.StatusConflict, gin.H{"error": "Solo se puede justificar una ausencia"})
		return
	}

	reason := c.PostForm("reason")
	if reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El motivo es obligatorio"})
		return
	}

	fileURL := ""
	if file, err := c.FormFile("file"); err == nil {
		fileURL, err = saveUploadedFile(c, file, "justifications")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not save file: " + err.Error()})
			return
		}
	}

	updates := map[string]interface{}{
		"status":                 models.AttendancePendingJustification,
		"justification_reason":   reason,
		"justification_file_url": fileURL,
	}
	if err := config.DB.Model(&record).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ResolveJustificationInput es la decisión del preceptor.
type ResolveJustificationInput struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ResolveJustificationHandler resuelve un pedido de justificación: aprobar
// deja el registro en JUSTIFIED, rechazar lo devuelve a ABSENT. En ambos
// casos el motivo y el archivo se limpian junto con el cambio de estado.
func ResolveJustificationHandler(c *gin.Context) {
	var input ResolveJustificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var record models.AttendanceRecord
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
		return
	}

	if record.Status != models.AttendancePendingJustification {
		c.JSON(http.StatusConflict, gin.H{"error": "El registro no tiene una justificación pendiente"})
		return
	}

	newStatus := models.AttendanceAbsent
	if *input.Approved {
		newStatus = models.AttendanceJustified
	}

	updates := map[string]interface{}{
		"status":                 newStatus,
		"justification_reason":   "",
		"justification_file_url": "",
	}
	if err := config.DB.Model(&record).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update record"})
		return
	}

	c.JSON(http.StatusOK, record)
}
