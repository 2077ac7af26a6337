package main

import (
	"log"

	"mistogo/config"
	"mistogo/database"
	"mistogo/notifications"
	authRoutes "mistogo/routers/authRoutes"
	paymentRoutes "mistogo/routers/paymentRoutes"
	supportRoutes "mistogo/routers/supportRoutes"
	"mistogo/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func buildNotificationManager() *notifications.Manager {
	cfg := config.AppConfig

	var senders []notifications.Sender
	if cfg.SMTPSender != "" && cfg.SupportInbox != "" {
		senders = append(senders, notifications.NewEmailSender(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword, cfg.SupportInbox,
		))
	} else {
		log.Println("Warning: SMTP not configured, email notifications disabled.")
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		senders = append(senders, notifications.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID))
	} else {
		log.Println("Warning: Telegram bot not configured, Telegram notifications disabled.")
	}

	return notifications.NewManager(database.Database.Db, cfg.NotifyWorkers, senders...)
}

func main() {
	config.LoadConfig()
	database.ConnectDb()

	notifications.Default = buildNotificationManager()
	defer notifications.Default.Shutdown()

	sweeper := utils.StartTicketSweeper()
	defer sweeper.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization,User-Id,Is-Admin",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	supportRoutes.SetupSupportRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
