// nexo-escolar/internal/handlers/report_handler.go

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"nexo-escolar/config"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// attendanceReportRow es una fila del reporte de asistencia.
type attendanceReportRow struct {
	StudentName string    `json:"studentName"`
	SubjectName string    `json:"subjectName"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
}

// ExportAttendanceHandler exporta la asistencia filtrada a un archivo Excel.
func ExportAttendanceHandler(c *gin.Context) {
	var rows []attendanceReportRow

	query := config.DB.Table("attendance_records ar").
		Select(`u.full_name as student_name, s.name as subject_name, ar.date, ar.status, ar.justification_reason as reason`).
		Joins("LEFT JOIN users u ON ar.student_id = u.id").
		Joins("LEFT JOIN subjects s ON ar.subject_id = s.id").
		Where("ar.deleted_at IS NULL").
		Order("ar.date DESC, u.full_name asc")

	if subjectID := c.Query("subjectId"); subjectID != "" {
		query = query.Where("ar.subject_id = ?", subjectID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("ar.date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("ar.date <= ?", to)
	}

	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Asistencia"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Alumno", "Materia", "Fecha", "Estado", "Motivo"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.StudentName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.SubjectName)
		if !r.Date.IsZero() {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Date.Format("02.01.2006"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Reason)
	}

	fileName := fmt.Sprintf("asistencia_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
