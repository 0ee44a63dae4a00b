// nexo-escolar/internal/routes/auth_routes.go
package routes

import (
	"nexo-escolar/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registra las rutas públicas de autenticación.
// Estas rutas no pasan por el middleware de sesión.
func RegisterAuthRoutes(r *gin.Engine) {
	// Inicio de sesión con usuario y contraseña.
	r.POST("/login", handlers.LoginHandler)

	// Cierre de sesión: borra la cookie y la caché del usuario.
	r.GET("/logout", handlers.LogoutHandler)

	// Alta de un usuario nuevo.
	r.POST("/register", handlers.RegisterHandler)
}
