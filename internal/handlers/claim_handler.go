// nexo-escolar/internal/handlers/claim_handler.go

package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateClaimInput es el alta de un reclamo estudiantil.
type CreateClaimInput struct {
	Category    string `json:"category"`
	Description string `json:"description" binding:"required"`
}

// CreateClaimHandler registra el reclamo de un alumno y avisa a todos los
// delegados estudiantiles.
func CreateClaimHandler(c *gin.Context) {
	var input CreateClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	actorID := c.GetUint("user_id")
	claim := models.Claim{
		AuthorID:    actorID,
		Category:    input.Category,
		Description: input.Description,
		Status:      models.ClaimPending,
	}

	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.First(&author, actorID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyRole(tx, models.RoleStudentRep, actorID,
			models.NotifNewClaim,
			"Nuevo reclamo de "+author.FullName,
			claim.Description)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create claim"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusCreated, claim)
}

// ListClaimsHandler lista reclamos: los delegados y la dirección ven todos,
// un alumno solo los propios.
func ListClaimsHandler(c *gin.Context) {
	query := config.DB.Preload("Author").Order("created_at desc")

	role := c.GetString("role")
	if role != models.RoleStudentRep && role != models.RoleDirector {
		query = query.Where("author_id = ?", c.GetUint("user_id"))
	} else if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var claims []models.Claim
	if err := query.Find(&claims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch claims"})
		return
	}

	if claims == nil {
		claims = make([]models.Claim, 0)
	}
	c.JSON(http.StatusOK, claims)
}

// TriageClaimInput es el avance de estado que hace un delegado.
type TriageClaimInput struct {
	Status   string `json:"status" binding:"required"`
	Response string `json:"response"`
}

// TriageClaimHandler avanza el circuito del reclamo
// (pendiente -> en_proceso -> resuelta) y se lo avisa al autor.
func TriageClaimHandler(c *gin.Context) {
	var input TriageClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var claim models.Claim
	if err := config.DB.First(&claim, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	if !validClaimTransition(claim.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Transición inválida: " + claim.Status + " -> " + input.Status})
		return
	}

	actorID := c.GetUint("user_id")
	var notifs []models.Notification
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": input.Status}
		if input.Response != "" {
			updates["response"] = input.Response
		}
		if err := tx.Model(&claim).Updates(updates).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.First(&author, claim.AuthorID).Error; err != nil {
			return err
		}

		var err error
		notifs, err = notifyUsers(tx, []models.User{author}, actorID,
			models.NotifClaimStatusChange,
			"Tu reclamo pasó a estado: "+input.Status,
			input.Response)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update claim"})
		return
	}

	pushNotifications(notifs)
	c.JSON(http.StatusOK, claim)
}

func validClaimTransition(from, to string) bool {
	switch from {
	case models.ClaimPending:
		return to == models.ClaimInProgress || to == models.ClaimResolved
	case models.ClaimInProgress:
		return to == models.ClaimResolved
	}
	return false
}
