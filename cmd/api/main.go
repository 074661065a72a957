package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/giglance/giglance_be/internal/config"
	"github.com/giglance/giglance_be/internal/db"
	"github.com/giglance/giglance_be/internal/handlers"
	"github.com/giglance/giglance_be/internal/middleware"
	"github.com/giglance/giglance_be/internal/models"
	"github.com/giglance/giglance_be/internal/realtime"
	"github.com/giglance/giglance_be/internal/services/hiring"
	"github.com/giglance/giglance_be/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Gig{}, &models.Bid{}); err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	notifier := realtime.NewNotifier(hub, rdb)

	hiringSvc := hiring.NewService(store.NewStores(gdb), store.NewTxManager(gdb), notifier)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	gigH := handlers.NewGigHandler(gdb)
	bidH := handlers.NewBidHandler(gdb, hiringSvc)
	wsH := handlers.NewWSHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Post("/auth/forgot-password", authH.ForgotPassword)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/gigs", gigH.ListOpen)
	api.Get("/gigs/:id", gigH.GetDetail)

	// protected (JWT)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", func(c *fiber.Ctx) error {
		uid := c.Locals("userId")

		var user models.User
		if err := gdb.First(&user, "id = ?", uid).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	})

	protected.Post("/gigs", gigH.Create)
	protected.Post("/bids", bidH.Submit)
	protected.Get("/bids/:gigId", bidH.ListForGig)
	protected.Patch("/bids/:bidId/hire", bidH.Hire)

	// WebSocket endpoint; auth happens inside the handler via the cookie
	app.Get("/ws", websocket.New(wsH.Handle))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
