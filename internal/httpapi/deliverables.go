package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

var runMsgs = struct {
	get, update, delete messages
}{
	get: messages{
		missingID: "Missing deliverable run id",
		notFound:  "Deliverable run not found",
		failed:    "Failed to get deliverable run",
	},
	update: messages{
		missingID: "Missing deliverable run id",
		notFound:  "Deliverable run not found",
		failed:    "Failed to update deliverable run",
	},
	delete: messages{
		missingID: "Missing deliverable run id",
		failed:    "Failed to delete deliverable run",
	},
}

func (s *Server) handleGetDeliverableRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.tracker.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err, runMsgs.get)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliverableRun": run})
}

// handleUpdateDeliverableRun applies status, notes and artifactPath from a
// JSON object. Notes and artifactPath are stored verbatim.
func (s *Server) handleUpdateDeliverableRun(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeObject(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	patch := types.DeliverableRunPatch{
		Status:       stringField(body, "status"),
		Notes:        stringField(body, "notes"),
		ArtifactPath: stringField(body, "artifactPath"),
	}

	run, err := s.tracker.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		s.fail(w, r, err, runMsgs.update)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliverableRun": run})
}

func (s *Server) handleDeleteDeliverableRun(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, runMsgs.delete)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
