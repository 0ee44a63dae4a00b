// nexo-escolar/internal/routes/api_routes.go
package routes

import (
	"nexo-escolar/internal/handlers"
	"nexo-escolar/internal/middleware"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registra todos los endpoints del API que requieren sesión.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- PANEL DE INICIO ---
		apiGroup.GET("/dashboard", handlers.GetDashboardHandler)

		// --- PERFIL ---
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}

		// --- NOTIFICACIONES ---
		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("", handlers.ListNotificationsHandler)
			notifications.GET("/unread-count", handlers.UnreadCountHandler)
			notifications.POST("/read", handlers.MarkNotificationsReadHandler)
		}

		// --- ASISTENCIA ---
		attendance := apiGroup.Group("/attendance")
		{
			attendance.GET("", handlers.ListAttendanceHandler)
			attendance.POST("/bulk",
				middleware.RoleMiddleware(models.RolePreceptor, models.RoleTeacher),
				handlers.BulkSetAttendanceHandler)
			attendance.POST("/:id/justify",
				middleware.RoleMiddleware(models.RoleStudent),
				handlers.RequestJustificationHandler)
			attendance.POST("/:id/resolve",
				middleware.RoleMiddleware(models.RolePreceptor),
				handlers.ResolveJustificationHandler)
		}

		// --- NOTAS ---
		grades := apiGroup.Group("/grades")
		{
			grades.GET("", handlers.ListGradesHandler)
			grades.POST("", middleware.RoleMiddleware(models.RoleTeacher), handlers.UpsertGradeHandler)
		}

		// --- NOTICIAS ---
		news := apiGroup.Group("/news")
		{
			news.GET("", handlers.ListNewsHandler)
			news.POST("", middleware.RoleMiddleware(models.RoleDirector, models.RolePreceptor, models.RoleTeacher), handlers.CreateNewsHandler)
			news.PUT("/:id", handlers.UpdateNewsHandler)
			news.DELETE("/:id", handlers.DeleteNewsHandler)
		}

		// --- FORO / COMUNIDAD ---
		forum := apiGroup.Group("/forum")
		{
			forum.GET("/threads", handlers.ListThreadsHandler)
			forum.POST("/threads", handlers.CreateThreadHandler)
			forum.GET("/threads/:id", handlers.GetThreadHandler)
			forum.POST("/threads/:id/replies", handlers.CreateReplyHandler)
			forum.POST("/threads/:id/moderate",
				middleware.RoleMiddleware(models.RoleStudentRep),
				handlers.ModerateThreadHandler)
			forum.POST("/threads/:id/lock",
				middleware.RoleMiddleware(models.RoleStudentRep),
				handlers.LockThreadHandler)
		}

		// --- CALENDARIO / EVENTOS ---
		events := apiGroup.Group("/events")
		{
			events.GET("", handlers.GetEventsHandler)
			events.POST("", middleware.RoleMiddleware(models.RoleStudentRep, models.RolePreceptor, models.RoleTeacher), handlers.CreateEventHandler)
			events.PUT("/:id", handlers.UpdateEventHandler)
			events.DELETE("/:id", handlers.DeleteEventHandler)
			events.POST("/:id/join", handlers.JoinEventHandler)
			events.POST("/:id/leave", handlers.LeaveEventHandler)
		}

		// --- CHAT ---
		chat := apiGroup.Group("/chat")
		{
			chat.GET("/ws", handlers.ChatWSEndpoint)
			chat.GET("/rooms", handlers.ListChatsHandler)
			chat.POST("/rooms", handlers.CreateChatHandler)
			chat.GET("/rooms/:id/messages", handlers.GetMessagesHandler)
			chat.POST("/upload", handlers.UploadChatFileHandler)
		}

		// --- PLANO / INSTALACIONES ---
		installations := apiGroup.Group("/installations")
		{
			installations.GET("", handlers.ListInstallationsHandler)
			installations.GET("/:id", handlers.GetInstallationHandler)
			installations.POST("", middleware.RoleMiddleware(models.RoleStaff), handlers.CreateInstallationHandler)
			installations.PUT("/:id", middleware.RoleMiddleware(models.RoleStaff), handlers.UpdateInstallationHandler)
			installations.DELETE("/:id", middleware.RoleMiddleware(models.RoleStaff), handlers.DeleteInstallationHandler)
			installations.POST("/:id/report", middleware.RoleMiddleware(models.RoleStaff), handlers.ReportFromPanelHandler)
		}

		// --- INCIDENCIAS ---
		incidents := apiGroup.Group("/incidents")
		incidents.Use(middleware.RoleMiddleware(models.RoleStaff))
		{
			incidents.GET("", handlers.ListIncidentsHandler)
			incidents.POST("", handlers.CreateIncidentHandler)
			incidents.PATCH("/:id/status", handlers.UpdateIncidentStatusHandler)
		}

		// --- TAREAS DIARIAS ---
		tasks := apiGroup.Group("/tasks")
		tasks.Use(middleware.RoleMiddleware(models.RoleStaff))
		{
			tasks.GET("", handlers.ListTasksHandler)
			tasks.POST("", handlers.CreateTaskHandler)
			tasks.POST("/:id/complete", handlers.CompleteTaskHandler)
			tasks.GET("/history", handlers.ListMaintenanceHistoryHandler)
		}

		// --- RECLAMOS ---
		claims := apiGroup.Group("/claims")
		{
			claims.GET("", handlers.ListClaimsHandler)
			claims.POST("", middleware.RoleMiddleware(models.RoleStudent), handlers.CreateClaimHandler)
			claims.POST("/:id/triage",
				middleware.RoleMiddleware(models.RoleStudentRep),
				handlers.TriageClaimHandler)
		}

		// --- COMUNICADOS DEL CENTRO DE ESTUDIANTES ---
		announcements := apiGroup.Group("/announcements")
		{
			announcements.GET("", handlers.ListAnnouncementsHandler)
			announcements.POST("", middleware.RoleMiddleware(models.RoleStudentRep), handlers.CreateAnnouncementHandler)
			announcements.PUT("/:id", middleware.RoleMiddleware(models.RoleStudentRep), handlers.UpdateAnnouncementHandler)
			announcements.DELETE("/:id", middleware.RoleMiddleware(models.RoleStudentRep), handlers.DeleteAnnouncementHandler)
		}

		// --- CAMBIOS DE TURNO ---
		shifts := apiGroup.Group("/shift-requests")
		shifts.Use(middleware.RoleMiddleware(models.RoleStaff, models.RolePreceptor))
		{
			shifts.GET("", handlers.ListShiftRequestsHandler)
			shifts.POST("", handlers.CreateShiftRequestHandler)
			shifts.POST("/:id/respond", handlers.RespondShiftRequestHandler)
		}

		// --- MATERIAS Y CARRERAS ---
		apiGroup.GET("/subjects", handlers.ListSubjectsHandler)
		apiGroup.POST("/subjects", middleware.RoleMiddleware(models.RoleDirector), handlers.CreateSubjectHandler)
		apiGroup.GET("/careers", handlers.ListCareersHandler)

		// --- USUARIOS (administración) ---
		users := apiGroup.Group("/users")
		{
			users.GET("", handlers.ListUsersHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.PUT("/:id", middleware.RoleMiddleware(models.RoleDirector), handlers.UpdateUserHandler)
			users.DELETE("/:id", middleware.RoleMiddleware(models.RoleDirector), handlers.DeleteUserHandler)
		}

		// --- REPORTES ---
		reports := apiGroup.Group("/reports")
		reports.Use(middleware.RoleMiddleware(models.RolePreceptor, models.RoleTeacher))
		{
			reports.GET("/attendance/export", handlers.ExportAttendanceHandler)
		}
	}
}
