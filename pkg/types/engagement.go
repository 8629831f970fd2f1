package types

import "strings"

// EngagementStatusActive is the status assigned to new engagements.
// Engagement status is otherwise free text.
const EngagementStatusActive = "active"

// Engagement is a customer delivery relationship tracked by the workspace.
type Engagement struct {
	ID           string `json:"id"`
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"` // Fixed-width UTC text, see TimeLayout.
}

// EngagementPatch carries a partial engagement update. Nil fields are left
// unchanged.
type EngagementPatch struct {
	CompanyName  *string
	ContactEmail *string
	Status       *string
}

// Empty reports whether the patch changes nothing.
func (p EngagementPatch) Empty() bool {
	return p.CompanyName == nil && p.ContactEmail == nil && p.Status == nil
}

// Normalize trims every present field in place.
func (p *EngagementPatch) Normalize() {
	for _, f := range []*string{p.CompanyName, p.ContactEmail, p.Status} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Validate returns ErrEmptyPatch for an empty patch and ErrRequiredField
// when a present field is blank. Call Normalize first.
func (p EngagementPatch) Validate() error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	for _, f := range []*string{p.CompanyName, p.ContactEmail, p.Status} {
		if f != nil && *f == "" {
			return ErrRequiredField
		}
	}
	return nil
}
