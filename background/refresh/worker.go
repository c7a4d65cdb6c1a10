package refresh

import (
	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/activity"
	"go.uber.org/cadence/worker"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/ingest"
	"github.com/uvceed/pulse-api/store"
)

const TaskListName = "pulse-refresh-tasks"

// RefreshWorker keeps the snapshot cache warm: it periodically re-ingests
// every signal for the ZIPs clients asked about recently, so request-path
// refreshes stay the exception.
type RefreshWorker struct {
	domain   string
	pulse    store.PulseCore
	resolver geo.ZipResolver
	ingestor *ingest.Ingestor
}

func NewRefreshWorker(domain string, pulse store.PulseCore, resolver geo.ZipResolver, ingestor *ingest.Ingestor) *RefreshWorker {
	return &RefreshWorker{
		domain:   domain,
		pulse:    pulse,
		resolver: resolver,
		ingestor: ingestor,
	}
}

func (r *RefreshWorker) Register() {
	workflow.RegisterWithOptions(r.RefreshRequestedZipsWorkflow, workflow.RegisterOptions{Name: "RefreshRequestedZipsWorkflow"})

	activity.RegisterWithOptions(r.ListRequestedZipsActivity, activity.RegisterOptions{Name: "ListRequestedZipsActivity"})
	activity.RegisterWithOptions(r.RefreshZipSignalActivity, activity.RegisterOptions{Name: "RefreshZipSignalActivity"})
}

func (r *RefreshWorker) Start(service workflowserviceclient.Interface, logger *zap.Logger) {
	// TaskListName identifies set of client workflows, activities, and workers.
	// It could be your group or client or application name.
	workerOptions := worker.Options{
		Logger:       logger,
		MetricsScope: tally.NewTestScope(TaskListName, map[string]string{}),
	}

	worker := worker.New(
		service,
		r.domain,
		TaskListName,
		workerOptions)

	if err := worker.Start(); err != nil {
		panic("Failed to start worker")
	}

	logger.Info("Started Worker.", zap.String("worker", TaskListName))

	select {}
}
