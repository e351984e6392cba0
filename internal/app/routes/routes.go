package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/controllers"
	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	offeringController *controllers.OfferingController,
	scheduleController *controllers.ScheduleController,
	participantController *controllers.ParticipantController,
	occurrenceController *controllers.OccurrenceController,
	exceptionController *controllers.ExceptionController,
	trialController *controllers.TrialController,
	creditController *controllers.CreditController,
	attendanceController *controllers.AttendanceController,
	auditorController *controllers.AuditorController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Trial lookup by public code, for prospects confirming a booking
	v1.GET("/trials/code/:code", trialController.GetByCode)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Staff management (managers only)
		staff := authenticated.Group("/staff")
		staff.Use(authMiddleware.RoleRequired(models.RoleManager))
		{
			staff.POST("", authController.CreateStaff)
		}

		// Offerings; mutations are manager-only
		offerings := authenticated.Group("/offerings")
		{
			offerings.GET("", offeringController.GetAll)
			offerings.GET("/:id", offeringController.GetByID)

			managed := offerings.Group("")
			managed.Use(authMiddleware.RoleRequired(models.RoleManager))
			{
				managed.POST("", offeringController.Create)
				managed.PUT("/:id", offeringController.Update)
				managed.DELETE("/:id", offeringController.Delete)
			}
		}

		// Weekly template slots and enrollments
		slots := authenticated.Group("/slots")
		{
			slots.GET("", scheduleController.ListSlots)
			slots.GET("/:id", scheduleController.GetSlot)
			slots.POST("", scheduleController.CreateSlot)
			slots.PUT("/:id", scheduleController.UpdateSlot)
			slots.DELETE("/:id", scheduleController.DeleteSlot)

			slots.POST("/:id/enrollments", scheduleController.Enroll)

			// Resolved occurrences and attendance sheets hang off the
			// slot: a (slot, date) pair names one occurrence.
			slots.GET("/:id/occurrences/:date", occurrenceController.GetOccurrence)
			slots.GET("/:id/occurrences/:date/attendance", attendanceController.GetSheet)
			slots.PUT("/:id/occurrences/:date/attendance/marks", attendanceController.SaveMark)
			slots.POST("/:id/occurrences/:date/attendance", attendanceController.Submit)
			slots.DELETE("/:id/occurrences/:date/attendance", attendanceController.Reopen)
		}
		authenticated.DELETE("/enrollments/:enrollmentId", scheduleController.Unenroll)

		// Participants
		participants := authenticated.Group("/participants")
		{
			participants.GET("", participantController.GetAll)
			participants.GET("/:id", participantController.GetByID)
			participants.POST("", participantController.Create)
			participants.PUT("/:id", participantController.Update)
			participants.DELETE("/:id", participantController.Delete)
		}

		// Resolved day view
		authenticated.GET("/schedule/day", occurrenceController.GetDay)

		// Reschedule exceptions
		exceptions := authenticated.Group("/exceptions")
		{
			exceptions.GET("", exceptionController.List)
			exceptions.GET("/:id", exceptionController.GetByID)
			exceptions.GET("/:id/destination", exceptionController.GetDestination)
			exceptions.POST("", exceptionController.Create)
			exceptions.POST("/:id/approve", exceptionController.Approve)
			exceptions.POST("/:id/reject", exceptionController.Reject)
			exceptions.DELETE("/:id", exceptionController.Cancel)
		}

		// Trial bookings
		trials := authenticated.Group("/trials")
		{
			trials.GET("/:id", trialController.GetByID)
			trials.POST("", trialController.Create)
			trials.PUT("/:id/status", trialController.UpdateStatus)
			trials.DELETE("/:id", trialController.Delete)
		}

		// Credit drop-ins
		credits := authenticated.Group("/credits")
		{
			credits.GET("/:id", creditController.GetByID)
			credits.POST("", creditController.Create)
			credits.DELETE("/:id", creditController.Delete)
		}

		// Attendance auditing
		authenticated.GET("/attendance/pending", auditorController.GetPending)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewStructuredResponse(gin.H{"status": "ok"}, "OK"))
	})
}
