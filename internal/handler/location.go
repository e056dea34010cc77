package handler

import (
	"net/http"
	"strings"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateLocationReq struct {
	City    string `form:"city" binding:"required,max=64"`
	Country string `form:"country" binding:"required,max=64"`
}

// UpdateLocation sets the authenticated user's home city/country and goes
// back to the dashboard.
func UpdateLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
			return
		}

		var req updateLocationReq
		if err := c.ShouldBind(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
			return
		}

		req.City = strings.TrimSpace(req.City)
		req.Country = strings.TrimSpace(req.Country)

		updates := map[string]interface{}{
			"city":    req.City,
			"country": req.Country,
		}
		if err := db.Model(user).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update location failed")
			return
		}

		user.City = req.City
		user.Country = req.Country

		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}
