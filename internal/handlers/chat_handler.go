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

// CreateChatInput es el alta de un chat nuevo.
type CreateChatInput struct {
	Name           string `json:"name"`
	Type           string `json:"type" binding:"required"` // "personal" o "group"
	ParticipantIDs []uint `json:"participantIds" binding:"required"`
}

// ChatListItemResponse es un ítem del listado de chats del usuario.
type ChatListItemResponse struct {
	ID           uint                  `json:"ID"`
	Name         string                `json:"name"`
	Type         string                `json:"type"`
	Participants []models.UserResponse `json:"participants"`
	LastMessage  string                `json:"lastMessage"`
	UpdatedAt    string                `json:"UpdatedAt"`
	UnreadCount  int64                 `json:"unreadCount"`
}

// ListChatsHandler devuelve los chats del usuario con su último mensaje y
// la cantidad de no leídos.
func ListChatsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var chats []models.Chat
	config.DB.Preload("Participants").
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id").
		Where("cp.user_id = ?", userID).
		Order("chats.updated_at DESC").
		Find(&chats)

	response := make([]ChatListItemResponse, 0, len(chats))
	for _, chat := range chats {
		var lastMsg models.ChatMessage
		config.DB.Where("chat_id = ?", chat.ID).Order("created_at DESC").Limit(1).First(&lastMsg)

		var readStatus models.MessageReadStatus
		config.DB.Where("chat_id = ? AND user_id = ?", chat.ID, userID).First(&readStatus)

		var unreadCount int64
		config.DB.Model(&models.ChatMessage{}).
			Where("chat_id = ? AND id > ? AND user_id <> ?", chat.ID, readStatus.LastReadMessageID, userID).
			Count(&unreadCount)

		participants := make([]models.UserResponse, 0, len(chat.Participants))
		for _, p := range chat.Participants {
			participants = append(participants, p.ToResponse())
		}

		lastMessageText := lastMsg.Content
		if lastMsg.Type == "file" {
			lastMessageText = lastMsg.FileName
		}

		response = append(response, ChatListItemResponse{
			ID:           chat.ID,
			Name:         chat.Name,
			Type:         chat.Type,
			Participants: participants,
			LastMessage:  lastMessageText,
			UpdatedAt:    chat.UpdatedAt.Format(time.RFC3339),
			UnreadCount:  unreadCount,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateChatHandler crea un chat. Para chats personales entre dos usuarios,
// si ya existe uno se devuelve el existente en lugar de duplicar.
func CreateChatHandler(c *gin.Context) {
	var input CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	currentUserID := c.GetUint("user_id")

	// El creador siempre participa
	isParticipant := false
	for _, id := range input.ParticipantIDs {
		if id == currentUserID {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		input.ParticipantIDs = append(input.ParticipantIDs, currentUserID)
	}

	if input.Type == "personal" && len(input.ParticipantIDs) == 2 {
		var existingChatID uint
		config.DB.Raw(`
            SELECT cp1.chat_id
            FROM chat_participants AS cp1
            JOIN chat_participants AS cp2 ON cp1.chat_id = cp2.chat_id
            JOIN chats ON chats.id = cp1.chat_id
            WHERE chats.type = 'personal' AND cp1.user_id = ? AND cp2.user_id = ?
            LIMIT 1`, input.ParticipantIDs[0], input.ParticipantIDs[1]).Scan(&existingChatID)

		if existingChatID != 0 {
			var existingChat models.Chat
			config.DB.Preload("Participants").First(&existingChat, existingChatID)
			c.JSON(http.StatusOK, gin.H{"message": "Chat already exists", "chat": existingChat})
			return
		}
	}

	chat := models.Chat{
		Name:        input.Name,
		Type:        input.Type,
		CreatedByID: currentUserID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		for _, pID := range input.ParticipantIDs {
			role := "member"
			if pID == currentUserID {
				role = "admin"
			}
			participant := models.ChatParticipant{ChatID: chat.ID, UserID: pID, Role: role}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	config.DB.Preload("Participants").First(&chat, chat.ID)
	c.JSON(http.StatusCreated, chat)
}

// GetMessagesHandler devuelve el historial de un chat en el que el usuario
// participa y actualiza su marca de último leído.
func GetMessagesHandler(c *gin.Context) {
	userID := c.GetUint("user_id")
	chatID := c.Param("id")

	var participant models.ChatParticipant
	err := config.DB.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&participant).Error
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No participás de este chat"})
		return
	}

	var messages []models.ChatMessage
	err = config.DB.Preload("User").
		Where("chat_id = ?", chatID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch messages"})
		return
	}

	// Al abrir el chat, todo lo anterior queda leído
	if len(messages) > 0 {
		readStatus := models.MessageReadStatus{
			ChatID:            participant.ChatID,
			UserID:            userID,
			LastReadMessageID: messages[len(messages)-1].ID,
		}
		config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_read_message_id"}),
		}).Create(&readStatus)
	}

	if messages == nil {
		messages = make([]models.ChatMessage, 0)
	}
	c.JSON(http.StatusOK, messages)
}

// UploadChatFileHandler guarda un adjunto de chat y devuelve su URL para
// que el cliente lo mande como mensaje de tipo "file".
func UploadChatFileHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se recibió ningún archivo"})
		return
	}

	fileURL, err := saveUploadedFile(c, file, "chat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not save file: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileUrl":  fileURL,
		"fileName": file.Filename,
		"fileSize": file.Size,
	})
}
