package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// timeLayout is the human-readable timestamp format used in exports.
const timeLayout = "2006-01-02 15:04"

var exportHeader = []string{"Time", "Temperature", "Humidity", "Condition"}

// ExportHandler renders a user's retained weather logs as downloadable
// files.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportCSV streams the user's retained logs as CSV, oldest first. Rows are
// cursored out of the store one at a time rather than loaded in full.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	rows, err := h.DB.Model(&models.WeatherLog{}).
		Where("user_id = ?", user.ID).
		Order("timestamp ASC").
		Rows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query logs failed")
		return
	}
	defer rows.Close()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=weather_hourly_data.csv")

	writer := csv.NewWriter(c.Writer)

	writer.Write(exportHeader)

	for rows.Next() {
		var entry models.WeatherLog
		if err := h.DB.ScanRows(rows, &entry); err != nil {
			// headers are already sent; stop the stream
			log.Printf("csv export for user %d: scan row: %v", user.ID, err)
			return
		}
		writer.Write(exportRow(&entry))
	}

	writer.Flush()
	// the response is already streaming, so a write failure cannot change
	// the status; record the truncation instead of dropping it
	if err := writer.Error(); err != nil {
		log.Printf("csv export for user %d truncated: %v", user.ID, err)
	}
}

// ExportXLSX exports the same rows as a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var entries []models.WeatherLog
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query logs failed")
		return
	}

	f := excelize.NewFile()
	const sheetName = "Weather Logs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, name)
	}

	for idx, entry := range entries {
		row := idx + 2
		values := exportRow(&entry)
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 24)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=weather_hourly_data.xlsx")

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// exportRow formats one log entry. Floats use the shortest representation
// that round-trips, so exported values equal the stored ones.
func exportRow(entry *models.WeatherLog) []string {
	return []string{
		entry.Timestamp.Format(timeLayout),
		strconv.FormatFloat(entry.Temperature, 'f', -1, 64),
		strconv.FormatFloat(entry.Humidity, 'f', -1, 64),
		entry.Condition,
	}
}
