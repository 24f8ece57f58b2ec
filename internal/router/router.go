// Package router wires handlers and middleware into the HTTP API.
package router

import (
	"time"

	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/handlers"
	"github.com/foodbridge/donation-api/internal/middleware"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the services and infrastructure the API is built from.
type Dependencies struct {
	DB             *gorm.DB
	SessionStore   sessions.Store
	Tokens         *services.TokenService
	Auth           *services.AuthService
	Donations      *services.DonationService
	HungerSpots    *services.HungerSpotService
	Funds          *services.FundService
	Admin          *services.AdminService
	RequestTimeout time.Duration
}

// New builds the gin engine with every route mounted.
func New(deps Dependencies) *gin.Engine {
	r := gin.Default()
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	authHandler := handlers.NewAuthHandler(deps.Auth)
	donationHandler := handlers.NewDonationHandler(deps.Donations)
	spotHandler := handlers.NewHungerSpotHandler(deps.HungerSpots)
	fundHandler := handlers.NewFundHandler(deps.Funds)
	adminHandler := handlers.NewAdminHandler(deps.Admin)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	donationID := middleware.RequireIDParam("donation")
	spotID := middleware.RequireIDParam("hunger spot")

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Donation routes (protected)
		donations := api.Group("/donations")
		donations.Use(requireAuth)
		{
			donor := middleware.RequireRole(models.RoleDonor)
			volunteer := middleware.RequireRole(models.RoleVolunteer)

			donations.POST("", donor, donationHandler.Submit)
			donations.GET("/mine", donor, donationHandler.ListMine)
			donations.GET("/pending", middleware.RequireRole(models.RoleVolunteer, models.RoleAdmin), donationHandler.ListPending)
			donations.GET("/accepted", volunteer, donationHandler.ListAccepted)
			donations.PATCH("/:id/accept", volunteer, donationID, donationHandler.Accept)
			donations.PATCH("/:id/resolve", volunteer, donationID, donationHandler.Resolve)
		}

		// Hunger spot routes
		spots := api.Group("/hunger-spots")
		{
			spots.GET("", spotHandler.ListPublic)
			spots.POST("", requireAuth, spotHandler.Report)
		}

		// Fund routes (public; the webhook is authenticated by its signature)
		funds := api.Group("/funds")
		{
			funds.POST("/order", fundHandler.CreateOrder)
			funds.POST("/webhook", fundHandler.Webhook)
			funds.POST("/confirm", fundHandler.Confirm)
			funds.GET("", fundHandler.List)
			funds.GET("/total", fundHandler.Total)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/metrics", adminHandler.Metrics)
			admin.GET("/hunger-spots", spotHandler.List)
			admin.POST("/hunger-spots", spotHandler.Create)
			admin.PATCH("/hunger-spots/:id/approve", spotID, spotHandler.Approve)
			admin.PATCH("/hunger-spots/:id/reject", spotID, spotHandler.Reject)
			admin.PATCH("/hunger-spots/:id/resolve", spotID, spotHandler.Resolve)
		}
	}

	return r
}
