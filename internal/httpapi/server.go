package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/internal/workspace"
)

// Options configures routing and lead redirects.
type Options struct {
	// BasePath prefixes every route, e.g. "/api". Empty mounts at the root.
	BasePath string
	// LeadRedirect is the page lead submissions are sent back to.
	LeadRedirect string
}

// Server holds the services behind the HTTP routes.
type Server struct {
	registry *workspace.Registry
	tracker  *workspace.Tracker
	intake   *workspace.Intake
	opts     Options
	logger   *zap.Logger
}

// NewServer returns a Server. A nil logger discards logs.
func NewServer(logger *zap.Logger, registry *workspace.Registry, tracker *workspace.Tracker, intake *workspace.Intake, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LeadRedirect == "" {
		opts.LeadRedirect = "/"
	}
	opts.BasePath = strings.TrimRight(opts.BasePath, "/")
	return &Server{
		registry: registry,
		tracker:  tracker,
		intake:   intake,
		opts:     opts,
		logger:   logger.Named("httpapi"),
	}
}

// Handler builds the router with access logging applied.
func (s *Server) Handler() http.Handler {
	root := mux.NewRouter()
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r := root
	if s.opts.BasePath != "" {
		r = root.PathPrefix(s.opts.BasePath).Subrouter()
	}

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/leads", s.handleLead).Methods(http.MethodPost)

	r.HandleFunc("/engagements", s.handleListEngagements).Methods(http.MethodGet)
	r.HandleFunc("/engagements", s.handleCreateEngagement).Methods(http.MethodPost)
	r.HandleFunc("/engagements/{id}", s.handleGetEngagement).Methods(http.MethodGet)
	r.HandleFunc("/engagements/{id}", s.handleUpdateEngagement).Methods(http.MethodPatch)
	r.HandleFunc("/engagements/{id}", s.handleDeleteEngagement).Methods(http.MethodDelete)
	r.HandleFunc("/engagements/{id}/export", s.handleExportEngagement).Methods(http.MethodGet)

	r.HandleFunc("/deliverable-runs/{id}", s.handleGetDeliverableRun).Methods(http.MethodGet)
	r.HandleFunc("/deliverable-runs/{id}", s.handleUpdateDeliverableRun).Methods(http.MethodPatch)
	r.HandleFunc("/deliverable-runs/{id}", s.handleDeleteDeliverableRun).Methods(http.MethodDelete)

	return s.accessLog(root)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
