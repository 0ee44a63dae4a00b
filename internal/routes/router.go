// nexo-escolar/internal/routes/router.go
package routes

import (
	"nexo-escolar/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter arma el motor gin completo: métricas, estáticos,
// rutas públicas y el grupo protegido por sesión.
func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.MetricsMiddleware())

	// Métricas para Prometheus.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Archivos subidos (justificativos, fotos de incidencias, adjuntos).
	r.Static("/static/uploads", "./static/uploads")

	RegisterAuthRoutes(r)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	RegisterAPIRoutes(protected)

	return r
}
