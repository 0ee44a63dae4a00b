// nexo-escolar/main.go
package main

import (
	"log/slog"
	"os"

	"nexo-escolar/config"
	"nexo-escolar/internal/handlers"
	"nexo-escolar/internal/routes"
	"nexo-escolar/models"

	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	config.ConnectDB()
	config.ConnectRedis()

	if err := migrate(config.DB); err != nil {
		slog.Error("Error en la migración de la base de datos", "error", err)
		os.Exit(1)
	}

	if err := seed(config.DB); err != nil {
		slog.Error("Error cargando datos iniciales", "error", err)
		os.Exit(1)
	}

	// Hub de websockets para chat y notificaciones en vivo.
	go handlers.GlobalHub.Run()

	r := routes.SetupRouter()

	slog.Info("Servidor iniciado", "puerto", cfg.HTTPPort, "entorno", cfg.Env)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Career{},
		&models.Subject{},
		&models.AttendanceRecord{},
		&models.Grade{},
		&models.NewsItem{},
		&models.NewsFile{},
		&models.ForumThread{},
		&models.ForumReply{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Notification{},
		&models.Installation{},
		&models.Incident{},
		&models.DailyTask{},
		&models.MaintenanceHistoryItem{},
		&models.Claim{},
		&models.Announcement{},
		&models.ShiftChangeRequest{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.ChatMessage{},
		&models.MessageReadStatus{},
	)
}

// seed carga el plano de instalaciones y las carreras base la primera vez
// que arranca el sistema contra una base vacía.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Installation{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		installations := []models.Installation{
			{Name: "Aula 1", Status: models.InstallationOK, GridRow: 1, GridCol: 1, RowSpan: 1, ColSpan: 1},
			{Name: "Aula 2", Status: models.InstallationOK, GridRow: 1, GridCol: 2, RowSpan: 1, ColSpan: 1},
			{Name: "Aula 3", Status: models.InstallationOK, GridRow: 1, GridCol: 3, RowSpan: 1, ColSpan: 1},
			{Name: "Laboratorio de Informática", Status: models.InstallationOK, GridRow: 2, GridCol: 1, RowSpan: 1, ColSpan: 2},
			{Name: "Biblioteca", Status: models.InstallationOK, GridRow: 2, GridCol: 3, RowSpan: 1, ColSpan: 1},
			{Name: "Patio", Status: models.InstallationOK, GridRow: 3, GridCol: 1, RowSpan: 1, ColSpan: 3},
			{Name: "Baños Planta Baja", Status: models.InstallationOK, GridRow: 4, GridCol: 1, RowSpan: 1, ColSpan: 1},
			{Name: "Sala de Profesores", Status: models.InstallationOK, GridRow: 4, GridCol: 2, RowSpan: 1, ColSpan: 1},
			{Name: "Dirección", Status: models.InstallationOK, GridRow: 4, GridCol: 3, RowSpan: 1, ColSpan: 1},
		}
		if err := db.Create(&installations).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Career{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		careers := []models.Career{
			{Name: "Tecnicatura en Programación"},
			{Name: "Tecnicatura en Administración"},
		}
		if err := db.Create(&careers).Error; err != nil {
			return err
		}
	}

	return nil
}
