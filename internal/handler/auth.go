package handler

import (
	"net/http"
	"strings"
	"time"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves login, logout, registration and the token endpoint.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

// ---------- pages ----------

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Weather Dashboard - Login",
	})
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"title": "Weather Dashboard - Register",
	})
}

// ---------- register ----------

type registerReq struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6,max=72"`
}

// Register creates a new user. A taken email fails with 400; the existing
// user is left untouched.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid email or password")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	// case-insensitive uniqueness
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "user already exists")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ---------- login ----------

type loginReq struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// DoLogin verifies credentials, sets the session cookie and redirects to
// the dashboard.
func (h *AuthHandler) DoLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	user, ok := h.authenticate(c, req.Email, req.Password)
	if !ok {
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	c.SetCookie(middleware.CookieName, "Bearer "+token,
		int(h.TokenTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookie and returns to the login page. Tokens
// are never revoked server-side; dropping the cookie is the whole logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// ---------- token ----------

type tokenReq struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Token is the OAuth2-style password grant: form credentials in, bearer
// token out. Same credential check as DoLogin, no cookie.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	user, ok := h.authenticate(c, req.Username, req.Password)
	if !ok {
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// authenticate looks up the user and checks the password. On failure it
// writes a 401 that does not reveal which factor was wrong and returns
// ok=false.
func (h *AuthHandler) authenticate(c *gin.Context, email, password string) (*models.User, bool) {
	email = strings.TrimSpace(email)

	var user models.User
	if err := h.DB.Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return nil, false
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		return nil, false
	}

	return &user, true
}
