package routes

import (
	"hospital-portal-server/internal/config"
	"hospital-portal-server/internal/handlers"
	"hospital-portal-server/internal/mailer"
	"hospital-portal-server/internal/middleware"
	"hospital-portal-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, notifier mailer.Notifier) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, notifier)
	billingHandler := handlers.NewBillingHandler(db, notifier)
	scheduleHandler := handlers.NewScheduleHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	medicineHandler := handlers.NewMedicineHandler(db)
	inpatientHandler := handlers.NewInpatientHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register/patient", authHandler.RegisterPatient)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
			authRoutesPrivate.PUT("/password", authHandler.ChangePassword)
			// Doctor accounts are provisioned by staff, not self-registered
			authRoutesPrivate.POST("/register/doctor",
				middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.RegisterDoctor)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Doctor directory, accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Patients the acting doctor has seen
			doctorOnly := userRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				doctorOnly.GET("/my-patients", userHandler.GetMyPatients)
				doctorOnly.GET("/my-patients/:id", userHandler.GetPatientDetail)
			}

			adminRoutes := userRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", userHandler.GetAllUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.POST("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CancelAppointment)

			doctorOnly := appointmentRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				doctorOnly.GET("/queue", appointmentHandler.DoctorQueue)
				doctorOnly.PATCH("/:id/confirmation", appointmentHandler.ConfirmAppointment)
				doctorOnly.PATCH("/:id/diagnosis", appointmentHandler.AddDiagnosis)
				doctorOnly.POST("/:id/reminder", appointmentHandler.SendReminder)
			}
		}

		// Billing routes
		billingRoutes := private.Group("/billing")
		{
			billingRoutes.GET("/invoices", middleware.RoleAuthMiddleware(models.RolePatient), billingHandler.GetPatientBills)
			billingRoutes.GET("/invoices/:id", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleDoctor, models.RoleAdmin), billingHandler.GetInvoiceByID)
			billingRoutes.POST("/invoices/:id/payments", middleware.RoleAuthMiddleware(models.RolePatient), billingHandler.PostPayment)

			billingRoutes.POST("/invoices", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor), billingHandler.IssueInvoice)

			adminRoutes := billingRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("/invoices/overdue", billingHandler.GetOverdueInvoices)
				adminRoutes.POST("/invoices/:id/reminder", billingHandler.SendPaymentReminder)
			}
		}

		// Doctor schedule routes
		scheduleRoutes := private.Group("/schedules")
		{
			// Published open slots, used by patients when booking
			scheduleRoutes.GET("/:id/slots", scheduleHandler.GetOpenSlots)

			doctorOnly := scheduleRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				doctorOnly.GET("/mine", scheduleHandler.GetMySchedule)
				doctorOnly.POST("/availability", scheduleHandler.CreateAvailability)
				doctorOnly.PUT("/availability/:id", scheduleHandler.UpdateAvailability)
				doctorOnly.DELETE("/availability/:id", scheduleHandler.DeleteAvailability)
				doctorOnly.POST("/leaves", scheduleHandler.CreateLeave)
				doctorOnly.DELETE("/leaves/:id", scheduleHandler.DeleteLeave)
			}
		}

		// Prescription routes
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("/mine", middleware.RoleAuthMiddleware(models.RolePatient), prescriptionHandler.GetMyPrescriptions)
			prescriptionRoutes.GET("/written", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.GetDoctorPrescriptions)
		}

		// Pharmacy catalogue routes
		medicineRoutes := private.Group("/medicines")
		{
			medicineRoutes.GET("", medicineHandler.GetMedicines)
			medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)

			adminRoutes := medicineRoutes.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", medicineHandler.CreateMedicine)
				adminRoutes.PUT("/:id", medicineHandler.UpdateMedicine)
				adminRoutes.DELETE("/:id", medicineHandler.DeleteMedicine)
			}
		}

		// Ward room and admission routes
		inpatientRoutes := private.Group("", middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			inpatientRoutes.GET("/rooms", inpatientHandler.GetRooms)
			inpatientRoutes.POST("/rooms", inpatientHandler.CreateRoom)
			inpatientRoutes.GET("/admissions", inpatientHandler.GetAdmissions)
			inpatientRoutes.POST("/admissions", inpatientHandler.AdmitPatient)
			inpatientRoutes.POST("/admissions/:id/discharge", inpatientHandler.DischargePatient)
		}

		// Dashboard routes
		dashboardRoutes := private.Group("/dashboard")
		{
			dashboardRoutes.GET("/admin", middleware.RoleAuthMiddleware(models.RoleAdmin), dashboardHandler.GetAdminDashboard)
			dashboardRoutes.GET("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor), dashboardHandler.GetDoctorDashboard)
			dashboardRoutes.GET("/patient", middleware.RoleAuthMiddleware(models.RolePatient), dashboardHandler.GetPatientDashboard)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
