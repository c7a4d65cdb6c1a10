package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/store"
	"github.com/uvceed/pulse-api/utils"
)

var riskSeverity = map[schema.RiskLevel]int{
	schema.RiskUnknown:  0,
	schema.RiskLow:      1,
	schema.RiskModerate: 2,
	schema.RiskHigh:     3,
}

// signalSummary renders the latest snapshots as short localized sentences:
// one line per signal plus the suggestion for the most severe one. It reads
// the cache as-is and never triggers a refresh.
func (s *Server) signalSummary(c *gin.Context) {
	zipCode := c.Query("zip")
	if !geo.ValidZip(zipCode) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidZip)
		return
	}

	lang := c.Query("lang")
	if lang == "" {
		lang = "en"
	}
	localizer := utils.NewLocalizer(lang)

	lines := make([]string, 0, len(schema.SignalTypes))
	anyStale := false
	worst := struct {
		level      schema.RiskLevel
		confidence schema.Confidence
	}{schema.RiskUnknown, schema.ConfidenceLow}

	for _, signal := range schema.SignalTypes {
		snapshot, err := s.store.GetLatestSnapshot(zipCode, signal)
		if err != nil {
			if err == store.ErrSnapshotNotFound {
				continue
			}
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return
		}

		line, localizeErr := localizer.Localize(&i18n.LocalizeConfig{
			MessageID: "summary_signal_line",
			TemplateData: map[string]string{
				"Signal":     string(signal),
				"Level":      string(snapshot.RiskLevel),
				"Trend":      string(snapshot.Trend),
				"Confidence": string(snapshot.Confidence),
			},
		})
		if localizeErr != nil {
			c.Error(localizeErr)
			continue
		}
		lines = append(lines, line)

		if time.Since(snapshot.GeneratedAt) >= ttlFor(signal) {
			anyStale = true
		}

		if riskSeverity[snapshot.RiskLevel] > riskSeverity[worst.level] {
			worst.level = snapshot.RiskLevel
			worst.confidence = snapshot.Confidence
		}
	}

	suggestion, err := localizer.LocalizeMessage(&i18n.Message{
		ID: score.SuggestionID(worst.level, worst.confidence),
	})
	if err != nil {
		c.Error(err)
	}

	resp := gin.H{
		"zip_code":   zipCode,
		"lines":      lines,
		"suggestion": suggestion,
	}
	if anyStale {
		if notice, err := localizer.LocalizeMessage(&i18n.Message{ID: "summary_stale"}); err == nil {
			resp["stale_notice"] = notice
		}
	}

	c.JSON(http.StatusOK, resp)
}
