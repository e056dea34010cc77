package handler

import (
	"log"
	"net/http"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/retention"
	"weather-dashboard/internal/util"
	"weather-dashboard/internal/weather"

	"github.com/gin-gonic/gin"
)

// DashboardHandler renders the main page: current weather for the user's
// location plus the rolling 24-hour history.
type DashboardHandler struct {
	Weather *weather.Client
	Logs    *retention.Service
}

func NewDashboardHandler(client *weather.Client, logs *retention.Service) *DashboardHandler {
	return &DashboardHandler{
		Weather: client,
		Logs:    logs,
	}
}

// Dashboard fetches current conditions (one attempt), records them through
// the retention service, and renders the page. A failed fetch renders the
// page without weather and writes nothing; a failed record is a real server
// error because the insert+prune transaction did not commit.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var reading *weather.Reading
	if user.HasLocation() {
		var err error
		reading, err = h.Weather.Current(c.Request.Context(), user.City, user.Country)
		if err != nil {
			log.Printf("weather fetch for %s,%s failed: %v", user.City, user.Country, err)
			reading = nil
		}
	}

	if reading != nil {
		if err := h.Logs.Record(user.ID, *reading); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "record weather failed")
			return
		}
	}

	history, err := h.Logs.History(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load history failed")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":   "Weather Dashboard",
		"user":    user,
		"weather": reading,
		"logs":    history,
	})
}
