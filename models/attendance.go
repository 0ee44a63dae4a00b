// nexo-escolar/models/attendance.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados posibles de un registro de asistencia.
const (
	AttendancePresent              = "PRESENT"
	AttendanceAbsent               = "ABSENT"
	AttendancePendingJustification = "PENDING_JUSTIFICATION"
	AttendanceJustified            = "JUSTIFIED"
)

// AttendanceRecord es la asistencia de un alumno a una materia en una fecha.
// La tripla (student_id, subject_id, date) es la clave natural: una segunda
// carga masiva para la misma materia y fecha sobreescribe, nunca duplica.
type AttendanceRecord struct {
	gorm.Model
	StudentID uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_att_student_subject_date"`
	Student   User      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	SubjectID uint      `json:"subjectId" gorm:"not null;uniqueIndex:idx_att_student_subject_date"`
	Subject   Subject   `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_att_student_subject_date"`
	Status    string    `json:"status" gorm:"type:varchar(30);not null"`

	// El estado y la justificación se modifican siempre como una unidad:
	// nunca queda un motivo colgado sin su estado correspondiente.
	JustificationReason  string `json:"justificationReason,omitempty"`
	JustificationFileURL string `json:"justificationFileUrl,omitempty"`
}

// ValidAttendanceStatus indica si el estado recibido pertenece al conjunto fijo.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendancePendingJustification, AttendanceJustified:
		return true
	}
	return false
}
