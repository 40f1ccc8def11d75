package routes

import (
	"barbershop-backend/config"
	"barbershop-backend/controllers"
	"barbershop-backend/metrics"
	"barbershop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the router hands out to handlers.
type Dependencies struct {
	Appointments *controllers.AppointmentController
	Auth         *controllers.AuthController
	Dashboard    *controllers.DashboardController
	Reminders    *controllers.ReminderController
	Docs         *controllers.DocsController
	Health       *controllers.HealthController
	Limiter      utils.RateLimiter
	JWTSecret    string
	CORSOrigins  []string
	Logger       *logrus.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			deps.Logger.WithError(err).Fatal("failed to register validators")
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(deps.Logger))

	r.GET("/healthz", deps.Health.Healthz)
	r.GET("/readyz", deps.Health.Readyz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiDocs := r.Group("/api-docs")
	{
		apiDocs.GET("", deps.Docs.SwaggerUI)
		apiDocs.GET("/openapi.json", deps.Docs.OpenAPIJSON)
		apiDocs.GET("/openapi.yaml", deps.Docs.OpenAPIYAML)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
	}

	requireAuth := utils.AuthMiddleware(deps.JWTSecret)

	r.GET("/dashboard/overview", requireAuth, deps.Dashboard.GetDashboardOverview)

	jobs := r.Group("/jobs", requireAuth)
	{
		jobs.POST("/reminders", deps.Reminders.SendReminders)
		jobs.POST("/cleanup", deps.Reminders.RunCleanup)
	}

	appointments := r.Group("/appointments")
	{
		appointments.POST("", utils.RateLimit(deps.Limiter, deps.Logger), deps.Appointments.CreateAppointment)
		appointments.GET("", requireAuth, deps.Appointments.GetAppointments)
		appointments.GET("/by-date", requireAuth, deps.Appointments.GetAppointmentsByDate)
		appointments.GET("/:id", requireAuth, deps.Appointments.GetAppointment)
		appointments.PUT("/:id", requireAuth, deps.Appointments.UpdateAppointment)
		appointments.DELETE("/:id", requireAuth, deps.Appointments.DeleteAppointment)
	}

	return r
}
