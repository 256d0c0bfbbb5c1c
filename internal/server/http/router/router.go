package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/amvenit/amvenit/internal/config"
	"github.com/amvenit/amvenit/internal/server/http/handlers"
	"github.com/amvenit/amvenit/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, facade)
	courierHandler := handlers.NewCourierHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/orders", orderHandler.List)
	api.POST("/courier-request", courierHandler.Apply)
	api.POST("/order-notify", orderHandler.Notify)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/me", authHandler.Me)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/my/orders", orderHandler.Mine)
	authed.POST("/orders/:id/accept", orderHandler.Accept)
	authed.POST("/orders/:id/deliver", orderHandler.Deliver)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.AdminKey))
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/verify", adminHandler.VerifyOrder)
	admin.POST("/orders/reject", adminHandler.RejectOrder)
	admin.GET("/orders/verify-link", adminHandler.VerifyOrderLink)
	admin.GET("/orders/reject-link", adminHandler.RejectOrderLink)
	admin.GET("/couriers", adminHandler.Couriers)
	admin.POST("/couriers/approve", adminHandler.ApproveCourier)
	admin.POST("/couriers/reject", adminHandler.RejectCourier)

	return engine
}
