package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibetools/trendscout/app/history"
)

var (
	reportFilePattern = regexp.MustCompile(`^report_(\d{8})\.html$`)
	datePattern       = regexp.MustCompile(`^\d{8}$`)
)

func NewHandler(dataDir string, repo history.Repository, version string) *Handler {
	return &Handler{
		dataDir: dataDir,
		history: repo,
		version: version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if store, ok := h.history.(*history.Store); ok {
		if count, err := store.Count(); err == nil {
			health["history_items"] = count
		}
	}

	health["reports"] = len(h.reportDates())

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListReports(c *gin.Context) {
	dates := h.reportDates()

	reports := make([]map[string]interface{}, 0, len(dates))
	for _, date := range dates {
		reports = append(reports, map[string]interface{}{
			"date": date,
			"html": "/reports/" + date,
			"data": "/reports/" + date + "/data",
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"reports": reports,
		"total":   len(reports),
	})
}

func (h *Handler) GetReport(c *gin.Context) {
	date := c.Param("date")

	path, ok := h.reportPath(date, "report_"+date+".html")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.Header("X-Report-Date", date)
	c.File(path)
}

func (h *Handler) GetReportData(c *gin.Context) {
	date := c.Param("date")

	path, ok := h.reportPath(date, "trend_report_"+date+".json")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report data not found"})
		return
	}

	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(path)
}

// reportDates returns the dates with a generated HTML report, newest first.
// Reports live at <dataDir>/<date>/reports/report_<date>.html.
func (h *Handler) reportDates() []string {
	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		slog.Debug("Failed to scan data directory", "dir", h.dataDir, "error", err)
		return nil
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		reportsDir := filepath.Join(h.dataDir, entry.Name(), "reports")
		files, err := os.ReadDir(reportsDir)
		if err != nil {
			continue
		}

		for _, file := range files {
			m := reportFilePattern.FindStringSubmatch(file.Name())
			if m != nil {
				dates = append(dates, m[1])
				break
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return dates
}

func (h *Handler) reportPath(date, name string) (string, bool) {
	if !datePattern.MatchString(date) {
		return "", false
	}

	path := filepath.Join(h.dataDir, date, "reports", name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	return path, true
}
