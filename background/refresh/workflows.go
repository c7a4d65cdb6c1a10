package refresh

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/uvceed/pulse-api/schema"
)

const (
	RefreshCheckInterval = time.Hour

	// RecentZipDays bounds how far back the warm set reaches: a ZIP nobody
	// asked about for this long drops out of scheduled refreshes.
	RecentZipDays = 30
)

var activityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    2 * time.Minute,
	HeartbeatTimeout:       time.Second * 20,
}

// RefreshRequestedZipsWorkflow re-ingests every signal for recently requested
// ZIPs, either on the periodic timer or when kicked by signal. One failed
// (zip, signal) pair never blocks the rest of the sweep.
func (r *RefreshWorker) RefreshRequestedZipsWorkflow(ctx workflow.Context) error {
	ctx = workflow.WithActivityOptions(ctx, activityOptions)
	signalChan := workflow.GetSignalChannel(ctx, "refreshCheckSignal")
	defer signalChan.Close()

	logger := workflow.GetLogger(ctx)
	selector := workflow.NewSelector(ctx)

	timerCancelCtx, cancelTimerHandler := workflow.WithCancel(ctx)
	timerFuture := workflow.NewTimer(timerCancelCtx, RefreshCheckInterval)
	selector.AddFuture(timerFuture, func(f workflow.Future) {
		logger.Info("Start periodically signal refreshes")
	})

	selector.AddReceive(signalChan, func(c workflow.Channel, more bool) {
		cancelTimerHandler()
		signalChan.Receive(ctx, nil)

		logger.Info("Trigger signal refreshes by signal")
	})

	selector.Select(ctx)

	var zips []string
	if err := workflow.ExecuteActivity(ctx, r.ListRequestedZipsActivity, RecentZipDays).Get(ctx, &zips); err != nil {
		logger.Error("Fail to list requested zips.", zap.Error(err))
		sentry.CaptureException(err)
		return workflow.NewContinueAsNewError(ctx, r.RefreshRequestedZipsWorkflow)
	}

	for _, zip := range zips {
		for _, signal := range schema.SignalTypes {
			err := workflow.ExecuteActivity(ctx, r.RefreshZipSignalActivity, zip, string(signal)).Get(ctx, nil)
			if err != nil {
				logger.Error("Fail to refresh signal for zip.",
					zap.String("zip", zip),
					zap.String("signal", string(signal)),
					zap.Error(err))
				sentry.CaptureException(err)
			}
		}
	}

	return workflow.NewContinueAsNewError(ctx, r.RefreshRequestedZipsWorkflow)
}
