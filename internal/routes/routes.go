package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/audit"
	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	"github.com/konsultaklinik/clinic-scheduler/internal/handlers"
	infraRepo "github.com/konsultaklinik/clinic-scheduler/internal/infra/repository"
	"github.com/konsultaklinik/clinic-scheduler/internal/middleware"
	ucAvailability "github.com/konsultaklinik/clinic-scheduler/internal/usecase/availability"
	ucBooking "github.com/konsultaklinik/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	computeDayUC := ucAvailability.NewComputeDay(scheduleRepo)
	computeRangeUC := ucAvailability.NewComputeRange(scheduleRepo, nil)
	doctorDaysUC := ucAvailability.NewDoctorDays(scheduleRepo, computeDayUC, nil)
	doctorSummaryUC := ucAvailability.NewDoctorSummary(scheduleRepo)
	validateSlotUC := ucAvailability.NewValidateSlot(scheduleRepo, computeDayUC)

	// ======================================================
	// USE CASES — BOOKING TRANSITIONS
	// ======================================================
	approveBookingUC := ucBooking.NewApproveBooking(scheduleRepo, auditDispatcher)
	rejectBookingUC := ucBooking.NewRejectBooking(scheduleRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher, approveBookingUC, rejectBookingUC)
	serviceHandler := handlers.NewServiceHandler(db)
	calendarHandler := handlers.NewCalendarHandler(cfg, computeDayUC, computeRangeUC)

	doctorHandler := handlers.NewDoctorHandler(
		db,
		cfg,
		auditDispatcher,
		computeDayUC,
		doctorDaysUC,
		doctorSummaryUC,
		validateSlotUC,
	)

	agentHandler := handlers.NewAgentHandler(
		scheduleRepo,
		cfg,
		computeDayUC,
		validateSlotUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC: BOOKING INTAKE
		// ------------------------------
		api.GET("/bookings", bookingHandler.List)
		api.GET("/bookings/:id", bookingHandler.Get)
		api.POST("/bookings", bookingHandler.Create)

		// ------------------------------
		// PUBLIC: CALENDAR
		// ------------------------------
		api.GET("/calendar/availability", calendarHandler.Availability)
		api.GET("/calendar/availability/day", calendarHandler.DayAvailability)

		// ------------------------------
		// PUBLIC: SERVICES / DOCTORS
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)

		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/availability", doctorHandler.Availability)
		api.GET("/doctors/summary", doctorHandler.Summary)
		api.GET("/doctors/:id", doctorHandler.Get)
		api.GET("/doctors/:id/services", doctorHandler.ListServices)
		api.GET("/doctors/:id/work-hours", doctorHandler.ListWorkHours)
		api.GET("/doctors/:id/availability/day", doctorHandler.DayAvailability)
		api.GET("/doctors/:id/availability/slot", doctorHandler.SlotCheck)

		// ------------------------------
		// AGENT TOOLING
		// ------------------------------
		api.POST("/doctors/filter-by-service", agentHandler.FilterByService)
		api.POST("/doctors/confirm-choice", agentHandler.ConfirmChoice)
		api.POST("/doctors/validate-slot", agentHandler.ValidateSlot)
		api.POST("/doctors/check-day-availability", agentHandler.CheckDayAvailability)

		// ------------------------------
		// SECURED: ADMIN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)
			secured.PATCH("/bookings/:id/approve", bookingHandler.Approve)
			secured.PATCH("/bookings/:id/reject", bookingHandler.Reject)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/doctors", doctorHandler.Create)
			secured.PUT("/doctors/:id", doctorHandler.Update)
			secured.DELETE("/doctors/:id", doctorHandler.Delete)
			secured.PUT("/doctors/:id/services", doctorHandler.SetServices)
			secured.PUT("/doctors/:id/work-hours", doctorHandler.SetWorkHours)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
