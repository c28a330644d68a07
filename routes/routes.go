package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/controllers"
	"github.com/amansgnr3001/studenthub/middleware"
	"github.com/amansgnr3001/studenthub/models"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/students/register", controllers.RegisterStudent)
			public.POST("/auth/students/login", controllers.LoginStudent)
			public.POST("/auth/faculty/register", controllers.RegisterFaculty)
			public.POST("/auth/faculty/login", controllers.LoginFaculty)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "StudentHub API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Account
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Achievement submissions (students only)
			submissions := protected.Group("/submissions", middleware.RequireRole(models.RoleStudent))
			{
				submissions.POST("/internships", controllers.CreateInternship)
				submissions.POST("/placements", controllers.CreatePlacement)
				submissions.POST("/skills", controllers.CreateSkill)
				submissions.POST("/curricular", controllers.CreateCurricularActivity)
				submissions.POST("/extracurricular", controllers.CreateExtracurricularActivity)
				submissions.POST("/academics", controllers.UploadAcademicRecord)
			}

			// Per-variant record listings (own records; admin may pass any id)
			protected.GET("/students/:id/records/:variant", controllers.GetStudentRecords)

			// Event streams
			stream := protected.Group("/stream")
			{
				stream.GET("/pending", middleware.RequireRole(models.RoleAdmin), controllers.PendingDocumentsStream)
				stream.GET("/students/:id/:variant", controllers.StudentRecordsStream)
			}

			// Admin review actions
			admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/pending", controllers.GetPendingDocuments)
				admin.POST("/review/accept", controllers.AcceptSubmission)
				admin.POST("/review/reject", controllers.RejectSubmission)
			}
		}
	}
}
