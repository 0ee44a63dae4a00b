package models

import "gorm.io/gorm"

// Estados de moderación de un hilo del foro.
const (
	ThreadPending  = "PENDING"
	ThreadApproved = "APPROVED"
	ThreadRejected = "REJECTED"
)

// ForumThread es un hilo de la comunidad. Nace PENDING y solo se vuelve
// visible para el resto cuando un moderador lo aprueba.
type ForumThread struct {
	gorm.Model
	AuthorID uint   `json:"authorId"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text"`
	Category string `json:"category" gorm:"type:varchar(50)"`
	Status   string `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Locked   bool   `json:"locked" gorm:"default:false"`

	Replies []ForumReply `json:"replies,omitempty" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE;"`
}

// ForumReply es una respuesta dentro de un hilo.
type ForumReply struct {
	gorm.Model
	ThreadID uint   `json:"threadId" gorm:"not null;index"`
	AuthorID uint   `json:"authorId"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	Content  string `json:"content" gorm:"type:text;not null"`
}
