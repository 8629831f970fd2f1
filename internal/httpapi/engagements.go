package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/conchdesk/internal/workspace"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

var (
	listMsgs = messages{failed: "Failed to list engagements"}

	createMsgs = messages{
		required: "companyName and contactEmail are required",
		failed:   "Failed to create engagement",
	}

	getMsgs = messages{
		missingID: "Missing engagement id",
		notFound:  "Engagement not found",
		failed:    "Failed to list deliverables",
	}

	updateMsgs = messages{
		missingID: "Missing engagement id",
		required:  "companyName, contactEmail and status cannot be blank",
		notFound:  "Engagement not found",
		failed:    "Failed to update engagement",
	}

	deleteMsgs = messages{
		missingID: "Missing engagement id",
		failed:    "Failed to delete engagement",
	}

	exportMsgs = messages{
		missingID: "Missing engagement id",
		notFound:  "Engagement not found",
		failed:    "Failed to export engagement",
	}
)

func (s *Server) handleListEngagements(w http.ResponseWriter, r *http.Request) {
	engagements, err := s.registry.List(r.Context())
	if err != nil {
		s.fail(w, r, err, listMsgs)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"engagements": engagements})
}

// handleCreateEngagement accepts either a JSON object or a form body with
// companyName and contactEmail.
func (s *Server) handleCreateEngagement(w http.ResponseWriter, r *http.Request) {
	var companyName, contactEmail string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		body, ok := decodeObject(r)
		if !ok {
			writeError(w, http.StatusBadRequest, createMsgs.required)
			return
		}
		if v := stringField(body, "companyName"); v != nil {
			companyName = *v
		}
		if v := stringField(body, "contactEmail"); v != nil {
			contactEmail = *v
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, createMsgs.required)
			return
		}
		companyName = r.PostFormValue("companyName")
		contactEmail = r.PostFormValue("contactEmail")
	}

	e, err := s.registry.Create(r.Context(), companyName, contactEmail)
	if err != nil {
		s.fail(w, r, err, createMsgs)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"engagement": e})
}

func (s *Server) handleGetEngagement(w http.ResponseWriter, r *http.Request) {
	detail, err := s.registry.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err, getMsgs)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateEngagement(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	patch := types.EngagementPatch{
		CompanyName:  stringField(body, "companyName"),
		ContactEmail: stringField(body, "contactEmail"),
		Status:       stringField(body, "status"),
	}

	e, err := s.registry.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		s.fail(w, r, err, updateMsgs)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"engagement": e})
}

func (s *Server) handleDeleteEngagement(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, deleteMsgs)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportEngagement serves the markdown summary as an attachment.
func (s *Server) handleExportEngagement(w http.ResponseWriter, r *http.Request) {
	summary, err := s.registry.Export(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err, exportMsgs)
		return
	}
	w.Header().Set("Content-Type", workspace.SummaryContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+summary.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(summary.Content))
}
