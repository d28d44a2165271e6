package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	"github.com/BruksfildServices01/gym-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/storage"
	ucAppointment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/appointment"
)

// Deps carries the infrastructure built in main. Limiter, Files and Audit
// may be nil.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
	Files   storage.FileStorage
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config
	db := deps.DB

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, deps.Audit)
	setStatusUC := ucAppointment.NewSetAppointmentStatus(appointmentRepo, deps.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	statisticsUC := ucAppointment.NewGetStatistics(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(db)
	meHandler := handlers.NewMeHandler(db)
	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		setStatusUC,
		listAppointmentsUC,
		statisticsUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(db, deps.Audit)
	profileHandler := handlers.NewMemberProfileHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, deps.Audit)
	trainerHandler := handlers.NewTrainerHandler(db, deps.Audit, deps.Files)
	gymHandler := handlers.NewGymHandler(db, deps.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	fallback := middleware.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	bookingLimit := middleware.RateLimit(deps.Limiter, fallback)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Health)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		secured.GET("/me", meHandler.GetMe)

		secured.GET("/services", publicHandler.ListServices)
		secured.GET("/services/:id/trainers", publicHandler.ListServiceTrainers)
		secured.GET("/trainers/:id", publicHandler.GetTrainer)
		secured.GET("/slots", publicHandler.Slots)

		secured.POST("/appointments",
			middleware.RequireRole(models.RoleMember, models.RoleAdmin),
			bookingLimit,
			appointmentHandler.Create,
		)
		secured.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
	}

	// ------------------------------
	// MEMBER
	// ------------------------------
	member := secured.Group("/me")
	member.Use(middleware.RequireRole(models.RoleMember))
	{
		member.GET("/appointments", appointmentHandler.ListMine)
		member.GET("/profile", profileHandler.Get)
		member.PUT("/profile", profileHandler.Put)
	}

	// ------------------------------
	// TRAINER
	// ------------------------------
	trainer := secured.Group("/me")
	trainer.Use(middleware.RequireRole(models.RoleTrainer))
	{
		trainer.GET("/trainer/appointments", appointmentHandler.ListTrainerDay)
		trainer.GET("/availability", availabilityHandler.List)
		trainer.POST("/availability", availabilityHandler.Create)
		trainer.DELETE("/availability/:id", availabilityHandler.Delete)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	admin := secured.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/services", serviceHandler.List)
		admin.POST("/services", serviceHandler.Create)
		admin.PATCH("/services/:id", serviceHandler.Update)
		admin.DELETE("/services/:id", serviceHandler.Deactivate)

		admin.GET("/trainers", trainerHandler.List)
		admin.POST("/trainers", trainerHandler.Create)
		admin.PATCH("/trainers/:id", trainerHandler.Update)
		admin.PUT("/trainers/:id/services", trainerHandler.SetServices)
		admin.PUT("/trainers/:id/photo", trainerHandler.UploadPhoto)

		admin.GET("/appointments", appointmentHandler.ListAll)
		admin.GET("/appointments/statistics", appointmentHandler.Statistics)

		admin.GET("/gym", gymHandler.Get)
		admin.PATCH("/gym", gymHandler.Update)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}

