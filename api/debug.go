package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/utils"
)

const defaultRetentionDays = 90

// debugData reports operational state for the internal dashboard: storage
// health and the ZIPs clients asked about recently.
func (s *Server) debugData(c *gin.Context) {
	storageOK := true
	if err := s.store.Ping(); err != nil {
		c.Error(err)
		storageOK = false
	}

	recentZips, err := s.store.ListRecentZips(7)
	if err != nil {
		c.Error(err)
	}

	// latest wastewater level per recent ZIP, a quick read on cache health
	levels := map[string]schema.RiskLevel{}
	if len(recentZips) > 0 {
		snapshots, err := s.store.ListLatestForZips(recentZips, schema.SignalWastewater)
		if err != nil {
			c.Error(err)
		}
		for _, snapshot := range snapshots {
			levels[snapshot.ZipCode] = snapshot.RiskLevel
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"version":           viper.GetString("server.version"),
		"storage_ok":        storageOK,
		"recent_zip_count":  len(recentZips),
		"recent_zips":       recentZips,
		"wastewater_levels": levels,
	})
}

// triggerSweep kicks the workflow that re-ingests recently requested ZIPs.
func (s *Server) triggerSweep(c *gin.Context) {
	if s.cadenceClient == nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorInternalServer)
		return
	}

	if err := utils.TriggerRefreshSweep(*s.cadenceClient, c); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"ok": 1})
}

// expireSnapshots drops snapshots older than the retention horizon.
func (s *Server) expireSnapshots(c *gin.Context) {
	days := defaultRetentionDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		days = n
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	expired, err := s.store.ExpireSnapshots(before)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expired": expired,
		"before":  before,
	})
}
