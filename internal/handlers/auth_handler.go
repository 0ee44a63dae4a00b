package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput son las credenciales del formulario de ingreso.
type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput son los datos de alta de un usuario nuevo.
type RegisterInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	CareerID *uint  `json:"careerId"`
	Year     int    `json:"year"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleStudent, models.RolePreceptor, models.RoleTeacher,
		models.RoleStaff, models.RoleDirector, models.RoleStudentRep:
		return true
	}
	return false
}

// LoginHandler valida las credenciales y emite el token de sesión.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("login = ?", input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenStr, err := token.SignedString(config.JwtKey)
	if err != nil {
		slog.Error("No se pudo firmar el token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int((24 * time.Hour).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": tokenStr, "user": user.ToResponse()})
}

// RegisterHandler da de alta un usuario nuevo con su rol.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !validRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role: " + input.Role})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	user := models.User{
		Login:        input.Login,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         input.Role,
		CareerID:     input.CareerID,
		Year:         input.Year,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya existe"})
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// LogoutHandler invalida la cookie de sesión y limpia el caché del usuario.
func LogoutHandler(c *gin.Context) {
	if userID := c.GetUint("user_id"); userID != 0 && config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", userID))
	}
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// GetProfileHandler devuelve los datos del usuario autenticado.
func GetProfileHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateProfileInput son los campos que el propio usuario puede editar.
type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateProfileHandler actualiza el perfil del usuario autenticado.
func UpdateProfileHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.FullName != "" {
			updates["full_name"] = input.FullName
		}
		if input.Email != "" {
			updates["email"] = input.Email
		}
		if input.Phone != "" {
			updates["phone"] = input.Phone
		}
		if input.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password_hash"] = string(hash)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}

	// El caché queda obsoleto después de editar el perfil
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", userID))
	}

	c.JSON(http.StatusOK, user.ToResponse())
}
