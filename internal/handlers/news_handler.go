package handlers

import (
	"net/http"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// ListNewsHandler devuelve las noticias del portal, de la más nueva a la más vieja
func ListNewsHandler(c *gin.Context) {
	var items []models.NewsItem

	err := config.DB.
		Preload("Author").
		Preload("Files").
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch news"})
		return
	}

	if items == nil {
		items = make([]models.NewsItem, 0)
	}
	c.JSON(http.StatusOK, items)
}

// CreateNewsHandler crea una noticia con sus archivos adjuntos
func CreateNewsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}

	item := models.NewsItem{AuthorID: userID, Category: "general"}

	if titles := form.Value["title"]; len(titles) > 0 {
		item.Title = titles[0]
	}
	if item.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El título es obligatorio"})
		return
	}
	if contents := form.Value["content"]; len(contents) > 0 {
		item.Content = contents[0]
	}
	if categories := form.Value["category"]; len(categories) > 0 {
		item.Category = categories[0]
	}

	files := form.File["files"]
	if len(files) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se pueden subir como máximo 10 archivos"})
		return
	}

	for _, file := range files {
		fileURL, err := saveUploadedFile(c, file, "news")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not save file: " + err.Error()})
			return
		}
		item.Files = append(item.Files, models.NewsFile{
			FileUrl:  fileURL,
			FileType: fileTypeForExt(file.Filename),
		})
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news item: " + err.Error()})
		return
	}

	config.DB.Preload("Author").Preload("Files").First(&item, item.ID)
	c.JSON(http.StatusCreated, item)
}

// UpdateNewsHandler edita el texto de una noticia propia
func UpdateNewsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var item models.NewsItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}

	if item.AuthorID != userID && c.GetString("role") != models.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sos el autor de la noticia"})
		return
	}

	var input struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{"title": input.Title, "content": input.Content}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update news item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteNewsHandler elimina una noticia propia (o cualquiera, si es dirección)
func DeleteNewsHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var item models.NewsItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}

	if item.AuthorID != userID && c.GetString("role") != models.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sos el autor de la noticia"})
		return
	}

	if err := config.DB.Select("Files").Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete news item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News item deleted"})
}
