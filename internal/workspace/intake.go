package workspace

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Notifier accepts alert text for best-effort delivery. Notify must not
// block on delivery.
type Notifier interface {
	Notify(text string)
}

// Intake captures leads submitted by a public site. One Intake serves one
// source identifier.
type Intake struct {
	store    types.Store
	notifier Notifier
	source   string
}

// NewIntake returns an Intake that tags leads with source. A nil notifier
// disables alerts.
func NewIntake(store types.Store, notifier Notifier, source string) *Intake {
	if source == "" {
		source = types.DefaultLeadSource
	}
	return &Intake{store: store, notifier: notifier, source: source}
}

// Source returns the identifier attached to every captured lead.
func (in *Intake) Source() string {
	return in.source
}

// Submit trims and validates the lead, persists it, and queues an alert.
// Validation runs before the store is consulted; alert delivery never
// affects the result.
func (in *Intake) Submit(ctx context.Context, lead types.Lead) (*types.Lead, error) {
	lead.Normalize()
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	if in.store == nil {
		return nil, types.ErrNotConfigured
	}

	lead.ID = ""
	lead.CreatedAt = ""
	lead.Source = in.source
	if err := in.store.InsertLead(ctx, &lead); err != nil {
		return nil, err
	}

	if in.notifier != nil {
		in.notifier.Notify(LeadAlertText(lead))
	}
	return &lead, nil
}

// LeadAlertText formats the alert message for a captured lead.
func LeadAlertText(lead types.Lead) string {
	return strings.Join([]string{
		"New Conch reliability lead",
		"Name: " + lead.Name,
		"Email: " + lead.Email,
		"Team size: " + orNone(lead.TeamSize, "n/a"),
		"Use case: " + orNone(lead.UseCase, "n/a"),
	}, "\n")
}
