package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/auth"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	medecinHandler      *MedecinHandler
	etudiantHandler     *EtudiantHandler
	adminHandler        *AdminHandler
	patientHandler      *PatientHandler
	consultationHandler *ConsultationHandler
	diagnosticHandler   *DiagnosticHandler
	actionHandler       *ActionHandler
	seanceHandler       *SeanceHandler
	reevaluationHandler *ReevaluationHandler
	notificationHandler *NotificationHandler
	enumHandler         *EnumHandler
	authMiddleware      *AuthMiddleware
	serviceManager      services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	verifier *auth.Verifier,
	userRepo repositories.UserRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		medecinHandler:      NewMedecinHandler(serviceManager.Medecin(), logger),
		etudiantHandler:     NewEtudiantHandler(serviceManager.Etudiant(), logger),
		adminHandler:        NewAdminHandler(serviceManager.Admin(), serviceManager.User(), logger),
		patientHandler:      NewPatientHandler(serviceManager.Patient(), serviceManager.Action(), logger),
		consultationHandler: NewConsultationHandler(serviceManager.Consultation(), serviceManager.Diagnostic(), logger),
		diagnosticHandler:   NewDiagnosticHandler(serviceManager.Diagnostic(), logger),
		actionHandler:       NewActionHandler(serviceManager.Action(), logger),
		seanceHandler:       NewSeanceHandler(serviceManager.Seance(), logger),
		reevaluationHandler: NewReevaluationHandler(serviceManager.Reevaluation(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		enumHandler:         NewEnumHandler(),
		authMiddleware:      NewAuthMiddleware(verifier, userRepo),
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "medical-registry-api",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "medical-registry-api",
		})
	})

	// Public auth routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", hm.authHandler.Login)
		authRoutes.POST("/refresh", hm.authHandler.Refresh)
		authRoutes.POST("/signup", hm.authHandler.Signup)
	}

	// Everything below requires a valid bearer token
	protected := router.Group("")
	protected.Use(hm.authMiddleware.Authenticate())
	{
		protectedAuth := protected.Group("/auth")
		{
			protectedAuth.POST("/logout", hm.authHandler.Logout)
			protectedAuth.PUT("/password", hm.authHandler.ChangePassword)
			protectedAuth.POST("/verify-email/:email", hm.authHandler.SendVerifyEmail)
		}

		// User routes - mutations are Admin only
		users := protected.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/role/:role", hm.userHandler.GetUsersByRole)
			users.GET("/medecins", hm.userHandler.ListMedecinUsers)
			users.GET("/email/:email", hm.userHandler.GetUserByEmail)
			users.GET("/:id", hm.userHandler.GetUser)
			users.POST("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.CreateUser)
			users.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.userHandler.DeleteUser)
		}

		// Medecin routes
		medecins := protected.Group("/medecin")
		{
			medecins.GET("", hm.medecinHandler.ListMedecins)
			medecins.GET("/profession/:profession", hm.medecinHandler.GetMedecinsByProfession)
			medecins.GET("/:id", hm.medecinHandler.GetMedecin)
			medecins.POST("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.medecinHandler.CreateMedecin)
			medecins.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.medecinHandler.UpdateMedecin)
			medecins.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.medecinHandler.DeleteMedecin)
		}

		// Etudiant routes
		etudiants := protected.Group("/etudiant")
		{
			etudiants.GET("", hm.etudiantHandler.ListEtudiants)
			etudiants.GET("/:id", hm.etudiantHandler.GetEtudiant)
			etudiants.POST("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.etudiantHandler.CreateEtudiant)
			etudiants.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.etudiantHandler.UpdateEtudiant)
			etudiants.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.etudiantHandler.DeleteEtudiant)
		}

		// Admin routes
		admins := protected.Group("/admin")
		{
			admins.GET("", hm.adminHandler.ListAdmins)
			admins.GET("/email/:email", hm.adminHandler.GetAdminByEmail)
			admins.GET("/:id", hm.adminHandler.GetAdmin)
			admins.POST("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.adminHandler.CreateAdmin)
			admins.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.adminHandler.UpdateAdmin)
			admins.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.adminHandler.DeleteAdmin)
		}

		// Patient routes - transfers are doctor-driven
		patients := protected.Group("/patient")
		{
			patients.GET("", hm.patientHandler.ListPatients)
			patients.GET("/:id", hm.patientHandler.GetPatient)
			patients.GET("/:id/actions", hm.patientHandler.GetPatientActions)
			patients.POST("", hm.patientHandler.CreatePatient)
			patients.PUT("/:id", hm.patientHandler.UpdatePatient)
			patients.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.patientHandler.DeletePatient)

			patients.PUT("/Paro-Ortho/:id", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.patientHandler.TransferParoOrtho)
			patients.PUT("/Ortho-Paro/:id", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.patientHandler.TransferOrthoParo)
			patients.PUT("/validate-transfer/:actionId", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.patientHandler.ValidateTransfer)
		}

		// Consultation routes
		consultations := protected.Group("/consultation")
		{
			consultations.GET("", hm.consultationHandler.ListConsultations)
			consultations.GET("/:id", hm.consultationHandler.GetConsultation)
			consultations.POST("", hm.consultationHandler.CreateConsultation)
			consultations.PUT("/:id", hm.consultationHandler.UpdateConsultation)
			consultations.DELETE("/:id", hm.consultationHandler.DeleteConsultation)

			consultations.POST("/:id/diagnosis", hm.consultationHandler.AddDiagnosis)
			consultations.PUT("/diagnosis/:id", hm.consultationHandler.UpdateDiagnosis)
		}

		// Diagnostic routes
		diagnostics := protected.Group("/diagnostique")
		{
			diagnostics.GET("", hm.diagnosticHandler.ListDiagnostics)
			diagnostics.GET("/:id", hm.diagnosticHandler.GetDiagnostic)
			diagnostics.POST("", hm.diagnosticHandler.CreateDiagnostic)
			diagnostics.PUT("/:id", hm.diagnosticHandler.UpdateDiagnostic)
			diagnostics.DELETE("/:id", hm.diagnosticHandler.DeleteDiagnostic)
		}

		// Action routes
		actions := protected.Group("/actions")
		{
			actions.GET("", hm.actionHandler.ListActions)
			actions.GET("/:id", hm.actionHandler.GetAction)
			actions.POST("", hm.actionHandler.CreateAction)
			actions.PUT("/:id", hm.actionHandler.UpdateAction)
			actions.DELETE("/:id", hm.actionHandler.DeleteAction)

			actions.PUT("/validate-transfer-ortho/:id", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.actionHandler.ValidateTransferOrtho)
			actions.PUT("/validate-transfer-paro/:id", hm.authMiddleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hm.actionHandler.ValidateTransferParo)
		}

		// Seance routes
		seances := protected.Group("/seance")
		{
			seances.GET("", hm.seanceHandler.ListSeances)
			seances.GET("/:id", hm.seanceHandler.GetSeance)
			seances.POST("", hm.seanceHandler.CreateSeance)
			seances.PUT("/:id", hm.seanceHandler.UpdateSeance)
			seances.DELETE("/:id", hm.seanceHandler.DeleteSeance)
		}

		// Reevaluation routes (multipart photo upload)
		reevaluations := protected.Group("/reevaluation")
		{
			reevaluations.GET("", hm.reevaluationHandler.ListReevaluations)
			reevaluations.GET("/:id", hm.reevaluationHandler.GetReevaluation)
			reevaluations.GET("/:id/photo", hm.reevaluationHandler.GetReevaluationPhoto)
			reevaluations.POST("", hm.reevaluationHandler.CreateReevaluation)
			reevaluations.PUT("/:id", hm.reevaluationHandler.UpdateReevaluation)
			reevaluations.DELETE("/:id", hm.reevaluationHandler.DeleteReevaluation)
		}

		// Notification routes - always scoped to the caller
		notifications := protected.Group("/notification")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", hm.notificationHandler.GetUnreadCount)
			notifications.PUT("/read-all", hm.notificationHandler.MarkAllNotificationsRead)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkNotificationRead)
			notifications.DELETE("/:id", hm.notificationHandler.DeleteNotification)
		}

		// Enum routes
		enums := protected.Group("/enum")
		{
			enums.GET("/motifs", hm.enumHandler.ListMotifs)
			enums.GET("/mastications", hm.enumHandler.ListMastications)
			enums.GET("/hygiene", hm.enumHandler.ListHygieneLevels)
			enums.GET("/seance-types", hm.enumHandler.ListSeanceTypes)
			enums.GET("/professions", hm.enumHandler.ListProfessions)
			enums.GET("/roles", hm.enumHandler.ListRoles)
		}
	}
}
