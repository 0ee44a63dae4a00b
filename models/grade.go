// nexo-escolar/models/grade.go

package models

import "gorm.io/gorm"

// Tipos de nota admitidos.
const (
	GradeParcial1 = "parcial1"
	GradeParcial2 = "parcial2"
	GradeFinal    = "final"
	GradeConcepto = "concepto"
)

// Grade es la nota de un alumno en una materia para un tipo de evaluación.
// Única por (alumno, materia, tipo): cargar de nuevo la misma nota la pisa.
type Grade struct {
	gorm.Model
	StudentID uint    `json:"studentId" gorm:"not null;uniqueIndex:idx_grade_student_subject_type"`
	Student   User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	SubjectID uint    `json:"subjectId" gorm:"not null;uniqueIndex:idx_grade_student_subject_type"`
	Subject   Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Type      string  `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_grade_student_subject_type"`
	Value     float64 `json:"value" gorm:"not null"`
}

// ValidGradeType valida el tipo de evaluación.
func ValidGradeType(t string) bool {
	switch t {
	case GradeParcial1, GradeParcial2, GradeFinal, GradeConcepto:
		return true
	}
	return false
}
