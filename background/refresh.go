package background

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/schema"
)

// RefreshZip re-ingests one signal for a ZIP. It is the task function behind
// the `signals.refresh_zip` queue and runs under the same advisory lock as
// request-path refreshes; a held lock means someone else is already fetching,
// so the task succeeds without doing anything.
func (m *BackgroundManager) RefreshZip(zipCode, signalType string) error {
	if !schema.IsValidSignalType(signalType) {
		return fmt.Errorf("unknown signal type: %s", signalType)
	}
	signal := schema.SignalType(signalType)

	g, err := m.resolver.Resolve(zipCode)
	if err != nil {
		log.WithField("prefix", "background").WithField("zip", zipCode).Error(err)
		sentry.CaptureException(err)
		return err
	}

	acquired, err := m.store.AcquireRefreshLock(zipCode, signal)
	if err != nil {
		return err
	}
	if !acquired {
		log.WithField("prefix", "background").
			WithField("zip", zipCode).
			WithField("signal", signalType).
			Info("refresh already in progress, skipping")
		return nil
	}
	defer func() {
		if err := m.store.ReleaseRefreshLock(zipCode, signal); err != nil {
			log.WithField("prefix", "background").Error(err)
		}
	}()

	if _, err := m.ingestor.Refresh(g, signal); err != nil {
		log.WithField("prefix", "background").
			WithField("zip", zipCode).
			WithField("signal", signalType).
			Error(err)
		sentry.CaptureException(err)
		return err
	}

	return nil
}

// ExpireSnapshots drops snapshots older than the retention horizon. It is the
// task function behind the `snapshots.expire` queue.
func (m *BackgroundManager) ExpireSnapshots(retentionDays int64) error {
	if retentionDays <= 0 {
		retentionDays = 90
	}

	before := time.Now().UTC().AddDate(0, 0, int(-retentionDays))
	expired, err := m.store.ExpireSnapshots(before)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	log.WithField("prefix", "background").
		WithField("expired", expired).
		WithField("before", before).
		Info("expired old snapshots")
	return nil
}
