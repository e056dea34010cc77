package handler

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"testing"
	"time"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/retention"
	"weather-dashboard/internal/util"
	"weather-dashboard/internal/weather"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// a named shared-cache DB so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.WeatherLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// newTestRouter wires the real handlers and middleware the way the router
// package does, with in-memory templates and the weather client pointed at
// weatherURL.
func newTestRouter(t *testing.T, db *gorm.DB, weatherURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tpl := template.Must(template.New("login.html").Parse(`login`))
	template.Must(tpl.New("register.html").Parse(`register`))
	template.Must(tpl.New("dashboard.html").Parse(
		`dashboard user={{ .user.Email }} weather={{ if .weather }}yes{{ else }}no{{ end }} logs={{ len .logs }}`))
	r.SetHTMLTemplate(tpl)

	authHandler := NewAuthHandler(db, testSecret, "test", 24, bcrypt.MinCost)
	r.GET("/", authHandler.ShowLogin)
	r.POST("/do-login", authHandler.DoLogin)
	r.GET("/logout", authHandler.Logout)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.POST("/token", authHandler.Token)

	weatherClient := weather.NewClient("test-key", weatherURL, time.Second)
	logService := retention.NewService(db, 24*time.Hour)
	dashboardHandler := NewDashboardHandler(weatherClient, logService)

	pages := r.Group("")
	pages.Use(middleware.AuthRequired(testSecret, db, true))
	pages.GET("/dashboard", dashboardHandler.Dashboard)

	actions := r.Group("")
	actions.Use(middleware.AuthRequired(testSecret, db, false))
	actions.POST("/update-location", UpdateLocation(db))

	exportHandler := NewExportHandler(db)
	actions.GET("/download_csv", exportHandler.ExportCSV)
	actions.GET("/download_xlsx", exportHandler.ExportXLSX)

	return r
}

func createTestUser(t *testing.T, db *gorm.DB, email, password, city, country string) *models.User {
	t.Helper()
	hash, err := util.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		City:         city,
		Country:      country,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// sessionCookie builds the Cookie header value for a logged-in user, the
// same "Bearer <token>" shape the login handler sets (gin URL-escapes
// cookie values).
func sessionCookie(t *testing.T, email string) string {
	t.Helper()
	token, err := util.GenerateToken(testSecret, "test", email, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return middleware.CookieName + "=" + url.QueryEscape("Bearer "+token)
}
