package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB levanta una base sqlite en memoria con el esquema completo y
// la deja como base global de los handlers.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Una sola conexión: con más, cada una vería su propia base en memoria.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	config.DB = db
	return db
}

// createUser da de alta un usuario de prueba con el rol indicado.
func createUser(t *testing.T, login, fullName, role string) models.User {
	t.Helper()

	user := models.User{
		Login:        login,
		PasswordHash: "x",
		FullName:     fullName,
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

// jsonContext arma un contexto gin con cuerpo JSON y el usuario autenticado
// ya inyectado, como lo dejaría el middleware de sesión.
func jsonContext(t *testing.T, user models.User, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(http.MethodPost, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	asUser(c, user)
	return c, w
}

// formContext arma un contexto gin con un formulario urlencoded.
func formContext(t *testing.T, user models.User, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	asUser(c, user)
	return c, w
}

// getContext arma un contexto gin para un GET con query string opcional.
func getContext(t *testing.T, user models.User, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	target := "/"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	asUser(c, user)
	return c, w
}

func asUser(c *gin.Context, user models.User) {
	c.Set("user_id", user.ID)
	c.Set("login", user.Login)
	c.Set("userName", user.FullName)
	c.Set("role", user.Role)
}

func withParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// notificationsFor trae la bandeja completa de un usuario.
func notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()

	var notifs []models.Notification
	require.NoError(t, config.DB.Where("user_id = ?", userID).Order("id asc").Find(&notifs).Error)
	return notifs
}
