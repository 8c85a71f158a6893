package main

import (
	"log"
	"time"

	"quickdeliver-backend/configs"
	"quickdeliver-backend/internal/handlers"
	"quickdeliver-backend/internal/middleware"
	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/repositories"
	"quickdeliver-backend/internal/services"
	"quickdeliver-backend/pkg/cache"
	"quickdeliver-backend/pkg/database"
	"quickdeliver-backend/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connections
	db, err := database.NewDatabase(config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName)
	if err != nil {
		log.Fatal("Failed to connect to databases:", err)
	}
	defer db.Close()

	// Auto-migrate PostgreSQL tables
	if err := autoMigratePostgres(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache == nil {
		log.Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()
	kafkaConsumer := messaging.NewKafkaConsumer(config.Kafka.Brokers, config.Kafka.GroupID)
	defer kafkaConsumer.Close()

	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(db.Postgres)
	restaurantRepo := repositories.NewRestaurantRepository(db.Postgres)
	menuRepo := repositories.NewMenuRepository(db.Postgres)
	driverRepo := repositories.NewDriverRepository(db.Postgres)
	motorcycleRepo := repositories.NewMotorcycleRepository(db.Postgres)
	addressRepo := repositories.NewAddressRepository(db.Postgres)
	orderRepo := repositories.NewOrderRepository(db.Postgres)

	// MongoDB repositories
	var productRepo repositories.ProductRepository
	if db.MongoDB != nil {
		productRepo = repositories.NewProductRepository(db.MongoDB)
	}

	// Initialize services
	customerService := services.NewCustomerService(customerRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	menuService := services.NewMenuService(menuRepo, restaurantRepo, productRepo, redisCache)
	addressService := services.NewAddressService(addressRepo, customerRepo)
	fleetService := services.NewFleetService(driverRepo, motorcycleRepo, redisCache, kafkaProducer, config.Kafka.Brokers, config.Kafka.TrackingTopic)
	orderService := services.NewOrderService(orderRepo, driverRepo, fleetService, kafkaProducer, config.Kafka.Brokers, config.Kafka.OrderTopic, config.Kafka.NotificationTopic)
	notificationService := services.NewNotificationService(kafkaProducer, config.Kafka.Brokers, config.Kafka.NotificationTopic)
	confirmationService := services.NewConfirmationService(redisCache, time.Duration(config.Cart.ConfirmationTTLMinutes)*time.Minute)
	checkoutService := services.NewCheckoutService(orderService, fleetService, notificationService, confirmationService)
	trackingService := services.NewTrackingService(redisCache, kafkaConsumer, config.Kafka.Brokers, config.Kafka.LocationsTopic, config.Kafka.GroupID)

	// Cart stores live in memory, mirrored to Redis per customer
	cartStorage := services.NewRedisSnapshotStorage(redisCache)
	cartManager := services.NewCartManager(cartStorage, config.Cart.StorageKeyPrefix)

	// Consume the driver location feed
	go trackingService.Run()

	var productService *services.ProductService
	if productRepo != nil {
		productService = services.NewProductService(productRepo)
	}

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, menuService)
	menuHandler := handlers.NewMenuHandler(menuService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService)
	fleetHandler := handlers.NewFleetHandler(fleetService, trackingService)
	cartHandler := handlers.NewCartHandler(cartManager, checkoutService, addressService, confirmationService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quickdeliver-backend",
		})
	})

	// API routes
	api := router.Group("/api/v1")

	// Register routes
	customerHandler.RegisterRoutes(api)
	restaurantHandler.RegisterRoutes(api)
	menuHandler.RegisterRoutes(api)
	addressHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	fleetHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)

	if productService != nil {
		productHandler := handlers.NewProductHandler(productService)
		productHandler.RegisterRoutes(api)
	}

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}

func autoMigratePostgres(db *database.Database) error {
	return db.Postgres.AutoMigrate(
		&models.Customer{},
		&models.Restaurant{},
		&models.Motorcycle{},
		&models.Driver{},
		&models.Address{},
		&models.Menu{},
		&models.Order{},
	)
}
