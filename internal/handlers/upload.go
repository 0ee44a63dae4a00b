package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes limita el tamaño de cualquier archivo subido (10 MB).
const maxUploadBytes = 10 << 20

// saveUploadedFile guarda un archivo subido bajo static/uploads/<subdir> con
// un nombre generado y devuelve la URL pública. El nombre original nunca se
// usa en disco.
func saveUploadedFile(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > maxUploadBytes {
		return "", fmt.Errorf("el archivo supera el tamaño máximo permitido")
	}

	uploadDir := filepath.Join("./static/uploads", subdir)
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(uploadDir, newFileName)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		return "", err
	}

	return "/static/uploads/" + subdir + "/" + newFileName, nil
}

// fileTypeForExt clasifica un adjunto para el visor del frontend.
func fileTypeForExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".mp4", ".webm", ".mov", ".ogg":
		return "video"
	default:
		return "file"
	}
}
