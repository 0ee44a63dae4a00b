package handlers

import (
	"fmt"
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ListUsersHandler devuelve el listado de usuarios, con paginación opcional.
// Con ?role= se filtra por rol y con ?all=true se devuelve todo sin paginar.
func ListUsersHandler(c *gin.Context) {
	var users []models.User

	query := config.DB.Order("id asc")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	if c.Query("all") == "true" {
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
			return
		}

		responseData := make([]models.UserResponse, 0, len(users))
		for _, user := range users {
			responseData = append(responseData, user.ToResponse())
		}
		c.JSON(http.StatusOK, gin.H{"data": responseData})
		return
	}

	var totalRows int64
	countQuery := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		countQuery = countQuery.Where("role = ?", role)
	}
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	responseData := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responseData = append(responseData, user.ToResponse())
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, responseData, totalRows))
}

// GetUserHandler devuelve un usuario por ID.
func GetUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateUserInput son los campos editables desde la administración.
type UpdateUserInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"` // para blanquear la contraseña
	CareerID *uint  `json:"careerId"`
	Year     int    `json:"year"`
}

// UpdateUserHandler actualiza un usuario desde la administración (dirección).
func UpdateUserHandler(c *gin.Context) {
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !validRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role: " + input.Role})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"full_name": input.FullName,
		"email":     input.Email,
		"phone":     input.Phone,
		"role":      input.Role,
		"career_id": input.CareerID,
		"year":      input.Year,
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		updates["password_hash"] = string(hash)
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user"})
		return
	}

	// Invalidamos el caché para que el cambio de rol impacte de inmediato
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", user.ID))
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// DeleteUserHandler da de baja un usuario.
func DeleteUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
		return
	}

	if config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", user.ID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
