// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the read-only output page, JSON snapshot and record deletion
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/viz"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	view      *output.View
	templates *template.Template
	generator *viz.GraphGenerator
	logger    *log.Logger
}

func NewServer(view *output.View, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Helper functions for templates
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"number": section.FormatNumber,
		// ref carries a delete target into the delete-button template
		"ref": func(name string, index int) map[string]interface{} {
			return map[string]interface{}{"Section": name, "Index": index}
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		view:      view,
		templates: tmpl,
		generator: viz.NewGraphGenerator(view),
		logger:    logger,
	}, nil
}

// Handler returns the routes, for Start and for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleOutput)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/tree.svg", s.handleTreeGraph)
	mux.HandleFunc("/api/output", s.handleAPIOutput)
	mux.HandleFunc("/output/delete", s.handleDelete)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("localhost:%d", port)
	s.logger.Info("Starting web server", "url", "http://"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// The data map includes ContentTemplate to specify which content block to render
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		s.logger.Error("template error", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Snapshot":        s.view.Assemble(),
		"Title":           "출력",
		"ContentTemplate": "output-content",
		"Error":           r.URL.Query().Get("error"),
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats := viz.GenerateDashboardStats(s.view.Assemble())

	data := map[string]interface{}{
		"Dashboard":       viz.RenderDashboard(stats),
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleTreeGraph(w http.ResponseWriter, r *http.Request) {
	svg, err := s.generator.GenerateTreeGraph(viz.FormatSVG)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		s.logger.Warn("error writing response", "err", err)
	}
}

func (s *Server) handleAPIOutput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.view.Assemble()); err != nil {
		s.logger.Warn("error writing response", "err", err)
	}
}

// handleDelete removes a displayed record. The page asks for confirmation
// before submitting, so the request itself is the user's yes.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.FormValue("section")
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "Invalid index", http.StatusBadRequest)
		return
	}

	err = s.view.Delete(name, index, prompt.AutoConfirm(true))
	switch {
	case err == nil:
		s.logger.Info("output record deleted", "section", name, "index", index)
	case errors.Is(err, output.ErrUnknownSection), errors.Is(err, section.ErrInvalidIndex):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		s.logger.Error("output delete failed", "section", name, "err", err)
		http.Redirect(w, r, "/?error="+template.URLQueryEscaper("삭제에 실패했습니다."), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
