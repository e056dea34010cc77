package router

import (
	"time"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handler"
	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/retention"
	"weather-dashboard/internal/weather"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures Gin engine, templates and all routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	weatherClient := weather.NewClient(
		cfg.Weather.APIKey,
		cfg.Weather.BaseURL,
		time.Duration(cfg.Weather.TimeoutSeconds)*time.Second,
	)
	logService := retention.NewService(db,
		time.Duration(cfg.Retention.WindowHours)*time.Hour)

	jwtSecret := cfg.JWT.Secret

	// public routes
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	r.GET("/", authHandler.ShowLogin)
	r.POST("/do-login", authHandler.DoLogin)
	r.GET("/logout", authHandler.Logout)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.POST("/token", authHandler.Token)

	// protected pages redirect to the login form when no session cookie is
	// present
	pages := r.Group("")
	pages.Use(middleware.AuthRequired(jwtSecret, db, true))

	dashboardHandler := handler.NewDashboardHandler(weatherClient, logService)
	pages.GET("/dashboard", dashboardHandler.Dashboard)

	// protected actions and downloads fail with 401 instead of redirecting
	actions := r.Group("")
	actions.Use(middleware.AuthRequired(jwtSecret, db, false))

	actions.POST("/update-location", handler.UpdateLocation(db))

	exportHandler := handler.NewExportHandler(db)
	actions.GET("/download_csv", exportHandler.ExportCSV)
	actions.GET("/download_xlsx", exportHandler.ExportXLSX)

	return r
}
