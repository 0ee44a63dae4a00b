package models

import "gorm.io/gorm"

// NewsFile representa un archivo adjunto a una noticia
type NewsFile struct {
	gorm.Model
	NewsItemID uint   `json:"news_item_id"`
	FileUrl    string `json:"file_url"`
	FileType   string `json:"file_type"` // 'image', 'video', 'file'
}

// NewsItem representa una noticia institucional publicada en el portal
type NewsItem struct {
	gorm.Model
	AuthorID uint   `json:"author_id"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text"`
	Category string `json:"category" gorm:"type:varchar(50);default:'general'"`

	Files []NewsFile `json:"files,omitempty" gorm:"foreignKey:NewsItemID;constraint:OnDelete:CASCADE;"`
}
