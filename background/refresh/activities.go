package refresh

import (
	"context"
	"fmt"

	"go.uber.org/cadence/activity"
	"go.uber.org/zap"

	"github.com/uvceed/pulse-api/schema"
)

// ErrRefreshInProgress is returned when another session already holds the
// advisory lock for a (zip, signal) pair.
var ErrRefreshInProgress = fmt.Errorf("refresh already in progress")

// ListRequestedZipsActivity returns ZIPs clients asked about within the last
// N days, most recently requested first.
func (r *RefreshWorker) ListRequestedZipsActivity(ctx context.Context, days int) ([]string, error) {
	return r.pulse.ListRecentZips(days)
}

// RefreshZipSignalActivity re-ingests one signal for a ZIP under the same
// advisory lock as request-path refreshes.
func (r *RefreshWorker) RefreshZipSignalActivity(ctx context.Context, zipCode, signalType string) error {
	logger := activity.GetLogger(ctx)

	if !schema.IsValidSignalType(signalType) {
		return fmt.Errorf("unknown signal type: %s", signalType)
	}
	signal := schema.SignalType(signalType)

	g, err := r.resolver.Resolve(zipCode)
	if err != nil {
		logger.Error("Fail to resolve zip.", zap.String("zip", zipCode), zap.Error(err))
		return err
	}

	acquired, err := r.pulse.AcquireRefreshLock(zipCode, signal)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrRefreshInProgress
	}
	defer func() {
		if err := r.pulse.ReleaseRefreshLock(zipCode, signal); err != nil {
			logger.Error("Fail to release refresh lock.", zap.String("zip", zipCode), zap.Error(err))
		}
	}()

	if _, err := r.ingestor.Refresh(g, signal); err != nil {
		logger.Error("Fail to refresh signal.",
			zap.String("zip", zipCode),
			zap.String("signal", signalType),
			zap.Error(err))
		return err
	}

	return nil
}
