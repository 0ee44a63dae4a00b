// nexo-escolar/internal/handlers/dashboard_handler.go

package handlers

import (
	"net/http"
	"time"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardHandler arma el resumen de inicio según el rol del usuario.
// Es el agregado que en la aplicación original cada panel calculaba por
// su cuenta en el cliente.
func GetDashboardHandler(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	summary := gin.H{"role": role}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread)
	summary["unreadNotifications"] = unread

	switch role {
	case models.RoleStudent:
		var absences int64
		config.DB.Model(&models.AttendanceRecord{}).
			Where("student_id = ? AND status = ?", userID, models.AttendanceAbsent).
			Count(&absences)
		summary["unjustifiedAbsences"] = absences

		var grades []models.Grade
		config.DB.Preload("Subject").Where("student_id = ?", userID).
			Order("updated_at desc").Limit(5).Find(&grades)
		summary["recentGrades"] = grades

		var news []models.NewsItem
		config.DB.Preload("Author").Order("created_at desc").Limit(5).Find(&news)
		summary["latestNews"] = news

	case models.RolePreceptor, models.RoleTeacher:
		var pending int64
		config.DB.Model(&models.AttendanceRecord{}).
			Where("status = ?", models.AttendancePendingJustification).
			Count(&pending)
		summary["pendingJustifications"] = pending

	case models.RoleStaff:
		var pendingTasks []models.DailyTask
		config.DB.Where("status = ?", models.TaskPending).
			Order("start_time asc").Find(&pendingTasks)
		summary["pendingTasks"] = pendingTasks

		var openIncidents int64
		config.DB.Model(&models.Incident{}).
			Where("status <> ?", models.IncidentResolved).
			Count(&openIncidents)
		summary["openIncidents"] = openIncidents

	case models.RoleDirector:
		var pendingThreads int64
		config.DB.Model(&models.ForumThread{}).
			Where("status = ?", models.ThreadPending).
			Count(&pendingThreads)
		summary["pendingThreads"] = pendingThreads

		var totalStudents int64
		config.DB.Model(&models.User{}).
			Where("role = ?", models.RoleStudent).
			Count(&totalStudents)
		summary["totalStudents"] = totalStudents

		var openClaims int64
		config.DB.Model(&models.Claim{}).
			Where("status <> ?", models.ClaimResolved).
			Count(&openClaims)
		summary["openClaims"] = openClaims

	case models.RoleStudentRep:
		var pendingClaims []models.Claim
		config.DB.Preload("Author").
			Where("status = ?", models.ClaimPending).
			Order("created_at asc").Find(&pendingClaims)
		summary["pendingClaims"] = pendingClaims

		var upcoming []models.Event
		config.DB.Where("start_time >= ?", time.Now()).
			Order("start_time asc").Limit(5).Find(&upcoming)
		summary["upcomingEvents"] = upcoming
	}

	c.JSON(http.StatusOK, summary)
}
