package utils

import (
	"context"
	"time"

	cadenceClient "go.uber.org/cadence/client"

	"github.com/uvceed/pulse-api/external/cadence"
)

// FIXME: there will be an import cycle if we use `github.com/uvceed/pulse-api/background/refresh`
const RefreshTaskListName = "pulse-refresh-tasks"

const refreshSweepWorkflowID = "signal-refresh-sweep"

// TriggerRefreshSweep is a helper function to send a signal to kick the
// workflow that re-ingests recently requested ZIPs, starting it first when no
// run exists yet.
func TriggerRefreshSweep(client cadence.CadenceClient, c context.Context) error {
	_, err := client.SignalWithStartWorkflow(c,
		refreshSweepWorkflowID, "refreshCheckSignal", nil,
		cadenceClient.StartWorkflowOptions{
			ID:                           refreshSweepWorkflowID,
			TaskList:                     RefreshTaskListName,
			ExecutionStartToCloseTimeout: time.Hour,
			WorkflowIDReusePolicy:        cadenceClient.WorkflowIDReusePolicyAllowDuplicate,
		}, "RefreshRequestedZipsWorkflow")
	return err
}
