// nexo-escolar/models/user.go

package models

import "gorm.io/gorm"

// Roles del sistema. Son un conjunto cerrado: cada usuario tiene exactamente uno.
const (
	RoleStudent    = "student"
	RolePreceptor  = "preceptor"
	RoleTeacher    = "teacher"
	RoleStaff      = "staff"
	RoleDirector   = "director"
	RoleStudentRep = "student_rep"
)

// User representa a cualquier persona del colegio: alumnos, preceptores,
// docentes, personal de mantenimiento, dirección y delegados estudiantiles.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName" gorm:"not null"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PhotoURL     string `json:"photoUrl"`
	Role         string `json:"role" gorm:"type:varchar(20);not null;index"`

	// Solo relevante para alumnos
	CareerID *uint `json:"careerId"`
	Year     int   `json:"year,omitempty"`
}

// UserResponse es la versión reducida del usuario para respuestas de la API.
// Evita filtrar el hash de la contraseña.
type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl"`
	CareerID *uint  `json:"careerId,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// ToResponse arma la vista pública del usuario.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Login:    u.Login,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		PhotoURL: u.PhotoURL,
		CareerID: u.CareerID,
		Year:     u.Year,
	}
}

// Career es una carrera/orientación a la que pertenecen los alumnos.
type Career struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

// Subject es una materia dictada dentro de una carrera.
type Subject struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	CareerID *uint  `json:"careerId"`
	Year     int    `json:"year"`
}
