package routes

import (
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/controllers"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/middleware"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/utils"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Gestao Documental API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/refresh", controllers.RefreshToken)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionView), controllers.GetDocuments)
				documents.GET("/:id", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionView), controllers.GetDocument)
				documents.GET("/:id/deadline", middleware.RequirePermission(utils.ModuleSLA, utils.ActionView), controllers.GetDocumentDeadline)
				documents.GET("/:id/movements", middleware.RequirePermission(utils.ModuleMovements, utils.ActionView), controllers.GetMovementHistory)

				documents.POST("", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionCreate), controllers.CreateDocument)

				// Lifecycle transitions
				documents.POST("/:id/validate", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.ValidateDocument)
				documents.POST("/:id/start", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.StartDocumentProgress)
				documents.POST("/:id/send-to-signature", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.SendDocumentToSignature)
				documents.POST("/:id/sign", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.SignDocument)
				documents.POST("/:id/dispatch", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.DispatchDocument)
				documents.POST("/:id/archive", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionArchive), controllers.ArchiveDocument)
				documents.POST("/:id/reactivate", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionArchive), controllers.ReactivateDocument)
				documents.POST("/:id/escalate", middleware.RequirePermission(utils.ModuleDocuments, utils.ActionMove), controllers.EscalateDocument)

				// Favorites
				documents.POST("/:id/favorite", controllers.AddFavorite)
				documents.DELETE("/:id/favorite", controllers.RemoveFavorite)
			}

			// Movements
			movements := protected.Group("/movements")
			{
				movements.POST("", middleware.RequirePermission(utils.ModuleMovements, utils.ActionCreate), controllers.RecordMovement)
				movements.GET("/inbox", middleware.RequirePermission(utils.ModuleMovements, utils.ActionView), controllers.GetInbox)
				movements.PUT("/:movement_id/read", middleware.RequirePermission(utils.ModuleMovements, utils.ActionView), controllers.MarkMovementRead)
			}

			// Dispatches
			dispatches := protected.Group("/dispatches")
			{
				dispatches.POST("", middleware.RequirePermission(utils.ModuleDispatches, utils.ActionCreate), controllers.OpenDispatch)
				dispatches.GET("/pending", middleware.RequirePermission(utils.ModuleDispatches, utils.ActionView), controllers.GetPendingDispatches)
				dispatches.GET("/:id", middleware.RequirePermission(utils.ModuleDispatches, utils.ActionView), controllers.GetDispatch)
				dispatches.POST("/:id/decision", middleware.RequirePermission(utils.ModuleDispatches, utils.ActionDecide), controllers.RecordDecision)
			}

			// Retention
			retention := protected.Group("/retention")
			{
				retention.POST("", middleware.RequirePermission(utils.ModuleRetention, utils.ActionCreate), controllers.MarkForRetention)
				retention.POST("/:id/approve", middleware.RequirePermission(utils.ModuleRetention, utils.ActionDecide), controllers.ApproveDestruction)
				retention.POST("/:id/reject", middleware.RequirePermission(utils.ModuleRetention, utils.ActionDecide), controllers.RejectDestruction)

				// Only admin executes destruction
				retention.POST("/:id/execute", middleware.RequireRole(utils.RoleAdmin), controllers.ExecuteDestruction)

				retention.GET("/expiring-week", middleware.RequirePermission(utils.ModuleRetention, utils.ActionView), controllers.GetExpiringThisWeek)
				retention.GET("/expiring-month", middleware.RequirePermission(utils.ModuleRetention, utils.ActionView), controllers.GetExpiringNextMonth)
			}

			// SLA
			sla := protected.Group("/sla")
			{
				sla.GET("/rules", middleware.RequirePermission(utils.ModuleSLA, utils.ActionView), controllers.GetSLARules)
				sla.PUT("/rules", middleware.RequireRole(utils.RoleAdmin), controllers.UpsertSLARule)
				sla.POST("/scan", middleware.RequireRole(utils.RoleAdmin), controllers.RunSLAScan)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread-count", controllers.GetUnreadNotificationCount)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Favorites
			protected.GET("/favorites", controllers.GetFavorites)

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}

	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
