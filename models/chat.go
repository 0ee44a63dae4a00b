package models

import (
	"gorm.io/gorm"
)

// Chat representa una conversación individual o grupal.
type Chat struct {
	gorm.Model
	Name         string `json:"name"`                                             // Nombre para chats grupales
	Type         string `json:"type"`                                             // 'personal', 'group'
	CreatedByID  uint   `json:"createdById"`                                      // ID del creador del chat
	CreatedBy    User   `json:"createdBy" gorm:"foreignKey:CreatedByID"`          // Relación con el modelo User
	Participants []User `json:"participants" gorm:"many2many:chat_participants;"` // Participantes (muchos a muchos)
}

// ChatParticipant es la tabla intermedia de participantes de un chat.
type ChatParticipant struct {
	ChatID uint   `json:"chatId" gorm:"primaryKey"`
	UserID uint   `json:"userId" gorm:"primaryKey"`
	Role   string `json:"role"` // 'member', 'admin'
}

// ChatMessage es un mensaje dentro de un chat.
type ChatMessage struct {
	gorm.Model
	ChatID   uint   `json:"chatId"`
	UserID   uint   `json:"userId"`
	User     User   `json:"user" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type     string `json:"type" gorm:"type:varchar(20);not null;default:'text'"` // text, file
	Content  string `json:"content"`
	FileURL  string `json:"fileUrl,omitempty" gorm:"type:varchar(255)"`
	FileName string `json:"fileName,omitempty" gorm:"type:varchar(255)"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// MessageReadStatus registra cuál fue el último mensaje leído por cada
// usuario en cada chat.
type MessageReadStatus struct {
	ChatID            uint `json:"chatId" gorm:"primaryKey"`
	UserID            uint `json:"userId" gorm:"primaryKey"`
	LastReadMessageID uint `json:"lastReadMessageId"`
}
