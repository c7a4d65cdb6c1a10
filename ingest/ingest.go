package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/external/epidata"
	"github.com/uvceed/pulse-api/external/socrata"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/store"
	"github.com/uvceed/pulse-api/utils"
)

const (
	logPrefix = "ingest"

	defaultILINetWeeks = 104
	defaultLabWeeks    = 104
	defaultNSSPWeeks   = 16
)

var (
	ErrUnknownSignalType = fmt.Errorf("unknown signal type")
)

// Ingestor runs one (zip, signal) refresh end to end: fetch upstream rows,
// reduce them through the engine, persist a snapshot. A pathogen whose fetch
// fails after retries is skipped; the signal errors only when every pathogen
// failed and there is nothing to snapshot.
type Ingestor struct {
	pulse   store.PulseCore
	epidata epidata.Epidata
	socrata socrata.Socrata
	params  score.Params

	ilinetWeeks int
	labWeeks    int
	nsspWeeks   int

	now func() time.Time
}

func New(pulse store.PulseCore, epidataClient epidata.Epidata, socrataClient socrata.Socrata, params score.Params) *Ingestor {
	return &Ingestor{
		pulse:       pulse,
		epidata:     epidataClient,
		socrata:     socrataClient,
		params:      params,
		ilinetWeeks: defaultILINetWeeks,
		labWeeks:    defaultLabWeeks,
		nsspWeeks:   defaultNSSPWeeks,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Refresh produces and persists a fresh snapshot for one signal type.
func (i *Ingestor) Refresh(geo *schema.Geo, signalType schema.SignalType) (*schema.SignalSnapshot, error) {
	var (
		assessments []schema.AssessedSignal
		source      string
		fetchErr    error
	)

	switch signalType {
	case schema.SignalWastewater:
		source = "cdc-nwss"
		assessments, fetchErr = i.assessWastewater(geo)
	case schema.SignalILINet:
		source = "delphi-fluview"
		assessments, fetchErr = i.assessILINet(geo)
	case schema.SignalFluLab:
		source = "delphi-fluview-clinical"
		assessments, fetchErr = i.assessFluLab(geo)
	case schema.SignalNSSPEDVisit:
		source = "cdc-nssp"
		assessments, fetchErr = i.assessEDVisits(geo)
	default:
		return nil, ErrUnknownSignalType
	}

	if len(assessments) == 0 && fetchErr != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"zip":    geo.ZipCode,
			"signal": signalType,
			"error":  fetchErr,
		}).Error("refresh produced no assessments")
		sentry.CaptureException(fetchErr)
		return nil, fetchErr
	}

	payload := schema.SignalPayload{
		Zip:         geo.ZipCode,
		Geo:         *geo,
		SignalType:  signalType,
		GeneratedAt: i.now(),
		Assessments: assessments,
		Source:      source,
	}
	if len(assessments) != 1 {
		rollup := score.RollupAssessments(assessments)
		rollup.Suggestion = Suggestion(utils.NewLocalizer("en"), rollup.Level, rollup.Confidence)
		payload.Rollup = &rollup
	}

	snapshot, err := i.pulse.CreateSnapshot(payload)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix":      logPrefix,
		"zip":         geo.ZipCode,
		"signal":      signalType,
		"assessments": len(assessments),
	}).Info("snapshot created")

	return snapshot, nil
}

// Suggestion renders the confidence-aware rollup suggestion in the
// localizer's language.
func Suggestion(localizer *i18n.Localizer, level schema.RiskLevel, confidence schema.Confidence) string {
	text, err := localizer.LocalizeMessage(&i18n.Message{ID: score.SuggestionID(level, confidence)})
	if err != nil {
		return ""
	}
	return text
}

// parseDay accepts the date layouts the CDC SODA datasets serve, with and
// without a time component.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// reportSkip logs a pathogen-level fetch failure and forwards it to sentry;
// the remaining pathogens still run.
func reportSkip(geo *schema.Geo, signalType schema.SignalType, pathogen schema.Pathogen, err error) {
	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"zip":      geo.ZipCode,
		"signal":   signalType,
		"pathogen": pathogen,
		"error":    err,
	}).Warn("pathogen fetch failed, skipped")
	sentry.CaptureException(err)
}
