package main

import (
	"log"

	"github.com/may5296007/Projetweb2/internal/config"
	"github.com/may5296007/Projetweb2/internal/database"
	"github.com/may5296007/Projetweb2/internal/handlers"
	"github.com/may5296007/Projetweb2/internal/middleware"
	"github.com/may5296007/Projetweb2/internal/services"

	_ "github.com/may5296007/Projetweb2/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Course Plan Review API
// @version         1.0
// @description     API for authoring course-plan forms, AI-assisted answer validation and the administrative approval cycle
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	userService := services.NewUserService(db)
	formService := services.NewFormService(db)

	remote := services.NewRemoteValidator(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	validationService := services.NewValidationService(db, remote)

	renderer := services.NewPDFRenderer()
	blobs := services.NewLocalBlobStore(cfg.UploadDir, cfg.PublicBaseURL)
	planService := services.NewPlanService(db, formService, renderer, blobs)

	authHandler := handlers.NewAuthHandler(authService)
	formHandler := handlers.NewFormHandler(formService)
	questionHandler := handlers.NewQuestionHandler(formService)
	planHandler := handlers.NewPlanHandler(planService, formService, authService, validationService)
	reviewHandler := handlers.NewReviewHandler(planService, userService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me", authHandler.Me)
		}

		forms := api.Group("/forms")
		forms.Use(middleware.JWTAuth(authService))
		{
			forms.GET("/active", formHandler.GetActiveForm)

			admin := forms.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", formHandler.ListForms)
				admin.POST("", formHandler.CreateForm)
				admin.GET("/:id", formHandler.GetForm)
				admin.PUT("/:id", formHandler.UpdateForm)
				admin.DELETE("/:id", formHandler.DeleteForm)
				admin.PUT("/:id/reorder", formHandler.ReorderQuestion)
				admin.POST("/:id/activate", formHandler.ActivateForm)
				admin.POST("/:id/questions", questionHandler.AddQuestion)
				admin.PUT("/:id/questions/:qid", questionHandler.UpdateQuestion)
				admin.DELETE("/:id/questions/:qid", questionHandler.RemoveQuestion)
			}
		}

		plans := api.Group("/plans")
		plans.Use(middleware.JWTAuth(authService))
		{
			plans.GET("", planHandler.ListPlans)
			plans.POST("", planHandler.CreatePlan)
			plans.GET("/:id", planHandler.GetPlan)
			plans.DELETE("/:id", planHandler.DeletePlan)
			plans.PUT("/:id/responses", planHandler.SaveResponses)
			plans.POST("/:id/validate", planHandler.ValidateAnswer)
			plans.GET("/:id/stats", planHandler.GetStats)
			plans.POST("/:id/submit", planHandler.SubmitPlan)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService), middleware.RequireAdmin())
		{
			admin.GET("/plans", reviewHandler.ListAllPlans)
			admin.GET("/plans/:id", reviewHandler.GetPlanForReview)
			admin.POST("/plans/:id/approve", reviewHandler.ApprovePlan)
			admin.POST("/plans/:id/revision", reviewHandler.RequestRevision)
			admin.GET("/teachers", reviewHandler.ListTeachers)
			admin.PUT("/users/:id/role", reviewHandler.UpdateUserRole)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
