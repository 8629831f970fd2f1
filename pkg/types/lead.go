package types

import "strings"

// DefaultLeadSource tags leads submitted through the customer app.
const DefaultLeadSource = "app.conch.so"

// Lead is a public-site contact request captured for sales follow-up.
// Leads are written once and never changed by the application.
type Lead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TeamSize  string `json:"team_size,omitempty"` // Optional; persisted as NULL when empty.
	UseCase   string `json:"use_case,omitempty"`  // Optional; persisted as NULL when empty.
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// Normalize trims every string field in place.
func (l *Lead) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.TeamSize = strings.TrimSpace(l.TeamSize)
	l.UseCase = strings.TrimSpace(l.UseCase)
	l.Source = strings.TrimSpace(l.Source)
}

// Validate returns ErrRequiredField if name or email is empty.
func (l *Lead) Validate() error {
	if l.Name == "" || l.Email == "" {
		return ErrRequiredField
	}
	return nil
}
