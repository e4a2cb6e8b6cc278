package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleetdesk/internal/config"
	"fleetdesk/internal/history"
)

// timeLayout is the picker format after normalization: seconds, no zone.
const timeLayout = "2006-01-02T15:04:05"

// GetHistory returns the fix sequence for one vehicle device over a time
// range, together with the derived trip summary and violation events.
func GetHistory(c *gin.Context) {
	device := c.Query("vehicle")
	if device == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'vehicle' query parameter"})
		return
	}

	start, err := parseQueryTime(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'start' timestamp: " + err.Error()})
		return
	}
	end, err := parseQueryTime(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'end' timestamp: " + err.Error()})
		return
	}

	store := history.NewStore(config.DB)
	points, err := store.Range(device, start, end)
	if err != nil {
		logrus.WithError(err).WithField("device", device).Error("History range query failed.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not query history"})
		return
	}
	if len(points) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no history for the requested range"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       points,
		"summary":    history.Summarize(points),
		"violations": history.Violations(points),
	})
}

// parseQueryTime accepts the picker's local ISO-like formats, tolerating a
// missing seconds field and a stray UTC suffix.
func parseQueryTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, history.NormalizeTimestamp(s))
}
