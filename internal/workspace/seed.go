package workspace

import "github.com/mesh-intelligence/conchdesk/pkg/types"

// ExpectedRunCount is the number of deliverable runs every engagement
// should carry, one per standard deliverable.
var ExpectedRunCount = len(types.StandardDeliverables)

// SeedRuns builds one run per standard deliverable, in checklist order,
// with status todo and empty notes and artifact path. IDs and the
// engagement reference are filled in by the store.
func SeedRuns() []types.DeliverableRun {
	runs := make([]types.DeliverableRun, 0, len(types.StandardDeliverables))
	for _, d := range types.StandardDeliverables {
		runs = append(runs, types.DeliverableRun{
			Key:          d.Key,
			Title:        d.Title,
			Status:       types.StatusTodo,
			Notes:        "",
			ArtifactPath: "",
		})
	}
	return runs
}
