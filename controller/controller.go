package controller

import (
	"context"
	"net/http"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/middelware"
	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/services"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

type Controller struct {
	Auth           *AuthController
	Employee       *EmployeeController
	Project        *ProjectController
	ProjectRequest *ProjectRequestController

	jwtManager *middelware.JWTManager
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	orgRepo := repository.NewOrganizationRepository(dbclient, cfg, log)
	employeeRepo := repository.NewEmployeeRepository(dbclient, cfg, log)
	projectRepo := repository.NewProjectRepository(dbclient, cfg, log)
	requestRepo := repository.NewProjectRequestRepository(dbclient, cfg, log)

	jwtManager := middelware.NewJWTManager(cfg, log)
	mailer := services.NewSMTPMailer(cfg, log)

	authService := services.NewAuthService(employeeRepo, orgRepo, jwtManager, log)
	requestService := services.NewProjectRequestService(requestRepo, orgRepo, mailer, cfg, log)

	return &Controller{
		Auth:           NewAuthController(ctx, authService, cfg, log),
		Employee:       NewEmployeeController(ctx, employeeRepo, log),
		Project:        NewProjectController(ctx, projectRepo, log),
		ProjectRequest: NewProjectRequestController(ctx, requestService, log),
		jwtManager:     jwtManager,
	}
}

// RegisterRoutes mounts all routes and starts the HTTP server
func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	log := logger.NewLogger(config.LogLevel, config.LogFormat)

	c.mountRoutes(config, r, basePath, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}

	log.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (c *Controller) mountRoutes(config *models.Config, r *gin.Engine, basePath string, log logger.Logger) {
	logging := middelware.NewLoggingMiddleware(log)
	cors := middelware.NewCORSMiddleware(config)
	r.Use(logging.Recovery(), logging.RequestLogger(), cors.CORS())

	api := r.Group(basePath)

	// Service root and health, no auth required
	api.GET("", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": config.AppName,
			"version": config.AppVersion,
		})
	})
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":        "healthy",
			"version":       config.AppVersion,
			"service":       config.AppName,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
			"uptimeSeconds": int64(time.Since(startTime).Seconds()),
		})
	})

	auth := c.jwtManager.AuthMiddleware()
	adminOrManager := c.jwtManager.RequireRole(models.AccessRoleAdmin, models.AccessRoleManager)
	adminOnly := c.jwtManager.RequireRole(models.AccessRoleAdmin)

	// Auth routes - no access token required
	authGroup := api.Group("/auth")
	authGroup.POST("/register", c.Auth.Register)
	authGroup.POST("/login", c.Auth.Login)
	authGroup.POST("/refresh", c.Auth.Refresh)
	authGroup.POST("/logout", c.Auth.Logout)

	// Employee routes
	employees := api.Group("/employees", auth)
	employees.GET("", c.Employee.ListEmployees)
	employees.GET("/:id", c.Employee.GetEmployee)
	employees.POST("", adminOrManager, c.Employee.CreateEmployee)
	employees.PUT("/:id", c.Employee.UpdateEmployee)
	employees.DELETE("/:id", adminOnly, c.Employee.DeleteEmployee)

	// Project routes
	projects := api.Group("/projects", auth)
	projects.GET("", c.Project.ListProjects)
	projects.GET("/:id", c.Project.GetProject)
	projects.POST("", adminOrManager, c.Project.CreateProject)
	projects.PUT("/:id", c.Project.UpdateProject)
	projects.DELETE("/:id", adminOrManager, c.Project.DeleteProject)

	// Client intake: any authenticated staffer may send an invite; the
	// form itself is public and authorized by token possession alone
	requests := api.Group("/project-requests")
	requests.POST("/send", auth, c.ProjectRequest.SendRequest)
	requests.GET("/form/:token", c.ProjectRequest.GetRequestForm)
	requests.POST("/form/:token/submit", c.ProjectRequest.SubmitRequestForm)
}
