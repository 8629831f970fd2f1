package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadNormalizeValidate(t *testing.T) {
	tests := []struct {
		name    string
		lead    Lead
		wantErr error
	}{
		{"complete", Lead{Name: " Ada ", Email: "ada@example.com\n", TeamSize: " 11-50 ", UseCase: "  "}, nil},
		{"blank name", Lead{Name: "   ", Email: "ada@example.com"}, ErrRequiredField},
		{"missing email", Lead{Name: "Ada"}, ErrRequiredField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := tt.lead
			lead.Normalize()
			assert.ErrorIs(t, lead.Validate(), tt.wantErr)
			if tt.wantErr == nil {
				assert.Equal(t, "Ada", lead.Name)
				assert.Equal(t, "ada@example.com", lead.Email)
				assert.Equal(t, "11-50", lead.TeamSize)
				assert.Equal(t, "", lead.UseCase, "blank optional fields trim to empty")
			}
		})
	}
}
