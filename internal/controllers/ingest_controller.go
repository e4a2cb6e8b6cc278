package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleetdesk/internal/config"
	"fleetdesk/internal/history"
)

// IngestPosition accepts one device fix, persists it and broadcasts it to
// live watchers. Fixes with malformed coordinates are rejected rather than
// stored, so the history store only ever holds usable points.
func IngestPosition(c *gin.Context) {
	var point history.Point
	if err := c.ShouldBindJSON(&point); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position payload: " + err.Error()})
		return
	}

	if point.Device == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing device_id"})
		return
	}
	if !point.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "missing or non-numeric coordinates"})
		return
	}

	store := history.NewStore(config.DB)
	if err := store.Save(point); err != nil {
		logrus.WithError(err).WithField("device", point.Device).Error("Failed to persist ingested fix.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save position"})
		return
	}

	trackingHub.Publish(point)

	logrus.WithFields(logrus.Fields{
		"device":    point.Device,
		"latitude":  point.Lat,
		"longitude": point.Lng,
		"speed":     point.SpeedKph,
	}).Debug("Ingested device fix.")

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}
