package types

// Deliverable run statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// DeliverableStatuses lists the accepted run statuses in workflow order.
var DeliverableStatuses = []string{StatusTodo, StatusInProgress, StatusDone}

// validDeliverableStatuses is the set of recognized run status values.
var validDeliverableStatuses = map[string]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusDone:       true,
}

// ValidDeliverableStatus reports whether s is one of DeliverableStatuses.
func ValidDeliverableStatus(s string) bool {
	return validDeliverableStatuses[s]
}

// StandardDeliverable is one entry of the fixed deliverable checklist.
type StandardDeliverable struct {
	Key   string
	Title string
}

// StandardDeliverables is the ordered checklist seeded into every new
// engagement.
var StandardDeliverables = []StandardDeliverable{
	{Key: "reliability_baseline", Title: "Reliability baseline and risk register"},
	{Key: "memory_data_audit", Title: "Memory data audit and quality report"},
	{Key: "retrieval_tuning", Title: "Retrieval tuning and evaluation pass"},
	{Key: "snapshot_drift_checks", Title: "Snapshot drift and regression checks"},
	{Key: "load_resilience", Title: "Load resilience and retry hardening"},
	{Key: "observability_setup", Title: "Observability dashboards and alerting"},
	{Key: "runbooks_slos", Title: "Runbooks, SLO targets, and escalation rules"},
	{Key: "handoff_enablement", Title: "Team handoff and enablement package"},
}

// DeliverableRun is one standard deliverable's progress within an engagement.
type DeliverableRun struct {
	ID           string `json:"id"`
	EngagementID string `json:"engagement_id"`
	Key          string `json:"key"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	ArtifactPath string `json:"artifact_path"`
	UpdatedAt    string `json:"updated_at"`
}

// DeliverableRunPatch carries a partial run update. Nil fields are left
// unchanged; notes and artifact path are stored verbatim.
type DeliverableRunPatch struct {
	Status       *string
	Notes        *string
	ArtifactPath *string
}

// Empty reports whether the patch changes nothing.
func (p DeliverableRunPatch) Empty() bool {
	return p.Status == nil && p.Notes == nil && p.ArtifactPath == nil
}

// Validate returns ErrInvalidStatus for an unknown status and ErrEmptyPatch
// for an empty patch.
func (p DeliverableRunPatch) Validate() error {
	if p.Status != nil && !ValidDeliverableStatus(*p.Status) {
		return ErrInvalidStatus
	}
	if p.Empty() {
		return ErrEmptyPatch
	}
	return nil
}
