package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/store"
)

const (
	defaultTTLHours      = 12
	defaultRefreshBudget = 55 * time.Second

	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	defaultHistoryDays  = 30

	refreshTaskName = "signals.refresh_zip"
)

// signalResult is the per-signal unit of the latest/refresh responses. When a
// snapshot exists Stale marks whether it predates the signal's TTL and could
// not be refreshed; a signal with no snapshot at all carries only Error.
type signalResult struct {
	SignalType  schema.SignalType     `json:"signal_type"`
	Stale       bool                  `json:"stale"`
	GeneratedAt time.Time             `json:"generated_at,omitempty"`
	Snapshot    *schema.SignalPayload `json:"snapshot,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// latestSignals serves the read-through cache: fresh snapshot if younger than
// the TTL, otherwise refresh under the per-(zip, signal) advisory lock, with
// stale data as the fallback when the lock is busy or the refresh fails.
func (s *Server) latestSignals(c *gin.Context) {
	zipCode := c.Query("zip")
	if !geo.ValidZip(zipCode) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidZip)
		return
	}

	signals, ok := parseSignals(c.Query("signals"))
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownSignal)
		return
	}

	if err := s.store.TouchZipRequest(zipCode); err != nil {
		c.Error(err)
	}

	g, err := s.resolver.Resolve(zipCode)
	if err != nil {
		if err == geo.ErrZipNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorZipNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	results := make([]signalResult, 0, len(signals))
	unavailable := 0
	for _, signal := range signals {
		result := s.serveSignal(g, signal)
		if result.Snapshot == nil {
			unavailable++
		}
		results = append(results, result)
	}

	if unavailable == len(results) {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorSignalUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zip_code": zipCode,
		"geo":      g,
		"signals":  results,
	})
}

func (s *Server) serveSignal(g *schema.Geo, signal schema.SignalType) signalResult {
	result := signalResult{SignalType: signal}

	snapshot, err := s.store.GetLatestSnapshot(g.ZipCode, signal)
	if err != nil && err != store.ErrSnapshotNotFound {
		result.Error = errorInternalServer.Message
		return result
	}

	if snapshot != nil && time.Since(snapshot.GeneratedAt) < ttlFor(signal) {
		result.GeneratedAt = snapshot.GeneratedAt
		result.Snapshot = &snapshot.Payload
		return result
	}

	fresh, refreshErr := s.refreshUnderLock(g, signal)
	if refreshErr == nil {
		result.GeneratedAt = fresh.GeneratedAt
		result.Snapshot = &fresh.Payload
		return result
	}

	if snapshot != nil {
		result.Stale = true
		result.GeneratedAt = snapshot.GeneratedAt
		result.Snapshot = &snapshot.Payload
		return result
	}

	result.Error = errorSignalUnavailable.Message
	return result
}

var errRefreshBusy = fmt.Errorf("refresh lock busy")

// refreshUnderLock runs one refresh while holding the advisory lock, bounded
// by the configured budget. A timed-out refresh keeps running and will land
// its snapshot for a later request; this request falls back to stale data.
func (s *Server) refreshUnderLock(g *schema.Geo, signal schema.SignalType) (*schema.SignalSnapshot, error) {
	acquired, err := s.store.AcquireRefreshLock(g.ZipCode, signal)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errRefreshBusy
	}

	type outcome struct {
		snapshot *schema.SignalSnapshot
		err      error
	}

	done := make(chan outcome, 1)
	go func() {
		snapshot, err := s.refresher.Refresh(g, signal)
		if rerr := s.store.ReleaseRefreshLock(g.ZipCode, signal); rerr != nil {
			log.WithField("zip", g.ZipCode).Error(rerr)
		}
		done <- outcome{snapshot, err}
	}()

	select {
	case o := <-done:
		return o.snapshot, o.err
	case <-time.After(refreshBudget()):
		return nil, fmt.Errorf("refresh exceeded budget for %s/%s", g.ZipCode, signal)
	}
}

// refreshSignals forces a refresh. Sync mode runs each signal under the lock
// and returns the fresh snapshots; async mode enqueues one background task
// per signal and returns the task ids.
func (s *Server) refreshSignals(c *gin.Context) {
	var req struct {
		Zip     string   `json:"zip"`
		Signals []string `json:"signals"`
		Async   bool     `json:"async"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if !geo.ValidZip(req.Zip) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidZip)
		return
	}

	signals, ok := parseSignals(strings.Join(req.Signals, ","))
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownSignal)
		return
	}

	if req.Async {
		taskIDs := make(map[string]string, len(signals))
		for _, signal := range signals {
			id := uuid.New().String()
			if _, err := s.background.SendTask(&tasks.Signature{
				UUID: id,
				Name: refreshTaskName,
				Args: []tasks.Arg{
					{Type: "string", Value: req.Zip},
					{Type: "string", Value: string(signal)},
				},
			}); err != nil {
				abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
				return
			}
			taskIDs[string(signal)] = id
		}

		c.JSON(http.StatusAccepted, gin.H{"tasks": taskIDs})
		return
	}

	g, err := s.resolver.Resolve(req.Zip)
	if err != nil {
		if err == geo.ErrZipNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorZipNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	results := make([]signalResult, 0, len(signals))
	unavailable := 0
	for _, signal := range signals {
		result := signalResult{SignalType: signal}
		fresh, refreshErr := s.refreshUnderLock(g, signal)
		if refreshErr != nil {
			result.Error = refreshErr.Error()
			unavailable++
		} else {
			result.GeneratedAt = fresh.GeneratedAt
			result.Snapshot = &fresh.Payload
		}
		results = append(results, result)
	}

	if unavailable == len(results) {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorSignalUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zip_code": req.Zip,
		"signals":  results,
	})
}

// signalHistory lists recent snapshots for one (zip, signal), newest first.
func (s *Server) signalHistory(c *gin.Context) {
	zipCode := c.Query("zip")
	if !geo.ValidZip(zipCode) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidZip)
		return
	}

	signal := c.Query("signal")
	if !schema.IsValidSignalType(signal) {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownSignal)
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		limit = n
	}

	days := defaultHistoryDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		days = n
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	snapshots, err := s.store.ListSnapshots(zipCode, schema.SignalType(signal), since, limit)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zip_code":  zipCode,
		"signal":    signal,
		"snapshots": snapshots,
	})
}

// parseSignals splits a comma-separated signal list; empty input selects
// every signal type.
func parseSignals(param string) ([]schema.SignalType, bool) {
	if strings.TrimSpace(param) == "" {
		return schema.SignalTypes, true
	}

	parts := strings.Split(param, ",")
	signals := make([]schema.SignalType, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !schema.IsValidSignalType(p) {
			return nil, false
		}
		signals = append(signals, schema.SignalType(p))
	}
	return signals, true
}

func ttlFor(signal schema.SignalType) time.Duration {
	hours := viper.GetFloat64("cache.ttl_hours." + string(signal))
	if hours <= 0 {
		hours = defaultTTLHours
	}
	return time.Duration(hours * float64(time.Hour))
}

func refreshBudget() time.Duration {
	seconds := viper.GetInt("refresh.budget_seconds")
	if seconds <= 0 {
		return defaultRefreshBudget
	}
	return time.Duration(seconds) * time.Second
}
