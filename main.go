package main

import (
	"exim/config"
	"exim/database"
	adminRoutes "exim/routers/adminRoutes"
	authRoutes "exim/routers/authRoutes"
	notificationRoutes "exim/routers/notificationRoutes"
	registrationRoutes "exim/routers/registrationRoutes"
	supportRoutes "exim/routers/supportRoutes"
	userRoutes "exim/routers/userRoutes"
	"exim/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024, // documents up to 10MB plus form overhead
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve locally stored documents
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	registrationRoutes.SetupRegistrationRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	supportRoutes.SetupSupportRoutes(app)

	// Background jobs: OTP cleanup and stale step reminders
	scheduler := utils.StartSchedulers()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
