package httpapi

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// handleLead captures a form submission and redirects back to the site with
// submitted=1 or error=1. It never returns an error body.
func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectLead(w, r, "error")
		return
	}

	lead := types.Lead{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		TeamSize: r.PostFormValue("teamSize"),
		UseCase:  r.PostFormValue("useCase"),
	}
	if _, err := s.intake.Submit(r.Context(), lead); err != nil {
		if !types.IsValidation(err) {
			s.logger.Error("lead insert failed", zap.String("source", s.intake.Source()), zap.Error(err))
		}
		s.redirectLead(w, r, "error")
		return
	}
	s.redirectLead(w, r, "submitted")
}

// redirectLead sends the browser to the configured page with flag=1 added
// to its query.
func (s *Server) redirectLead(w http.ResponseWriter, r *http.Request, flag string) {
	target := s.opts.LeadRedirect + "?" + flag + "=1"
	if u, err := url.Parse(s.opts.LeadRedirect); err == nil {
		q := u.Query()
		q.Set(flag, "1")
		u.RawQuery = q.Encode()
		target = u.String()
	}
	http.Redirect(w, r, target, http.StatusFound)
}
