package main

import (
	"log"
	"os"

	"watertracker/internal/database"
	"watertracker/internal/handler"
	"watertracker/internal/middleware"
	"watertracker/internal/repository"
	"watertracker/internal/service"
	"watertracker/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Water Tracker API
// @version         1.0
// @description     Backend for tracking water procurement, yield and consumption across a campus.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "watertracker"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	rateRepo := repository.NewRateRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	yieldRepo := repository.NewYieldRepository(db)
	consumptionRepo := repository.NewConsumptionRepository(db)

	// Services
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, txManager)
	masterService := service.NewMasterService(locationRepo, sourceRepo, vehicleRepo, auditService)
	rateService := service.NewRateService(rateRepo, vehicleRepo, sourceRepo, auditService)
	costService := service.NewCostService(rateRepo, sourceRepo, vehicleRepo)
	entryService := service.NewEntryService(entryRepo, sourceRepo, vehicleRepo, rateRepo, costService, auditService, wsHub)
	yieldService := service.NewYieldService(yieldRepo, auditService)
	consumptionService := service.NewConsumptionService(consumptionRepo, auditService)
	dashboardService := service.NewDashboardService(entryRepo)
	reportService := service.NewReportService(entryRepo, yieldRepo, consumptionRepo, locationRepo, sourceRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	masterHandler := handler.NewMasterHandler(masterService)
	rateHandler := handler.NewRateHandler(rateService)
	entryHandler := handler.NewEntryHandler(entryService, costService)
	yieldHandler := handler.NewYieldHandler(yieldService)
	consumptionHandler := handler.NewConsumptionHandler(consumptionService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	masterHandler.RegisterRoutes(api)
	rateHandler.RegisterRoutes(api)
	entryHandler.RegisterRoutes(api)
	yieldHandler.RegisterRoutes(api)
	consumptionHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
