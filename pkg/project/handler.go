package project

import (
	"errors"
	"net/http"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// ListProjects handles GET /api/project
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.client.ListProjects(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			rest.WriteJSON(w, http.StatusOK, []Project{})
			return
		}
		log.Errorf("Error listing projects: %v", err)
		rest.WriteError(w, http.StatusBadGateway, "Failed to reach project service", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, projects)
}

// ListTasks handles GET /api/project/{projectId}/task
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]
	tasks, err := h.client.ListTasks(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			rest.WriteJSON(w, http.StatusOK, []Task{})
			return
		}
		log.Errorf("Error listing tasks for project %s: %v", projectId, err)
		rest.WriteError(w, http.StatusBadGateway, "Failed to reach project service", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, tasks)
}
