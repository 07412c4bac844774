// Package project is a thin client for the organization's project service.
// Schedules reference its projects and tasks by id; the directory itself
// lives outside this application.
package project

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrNotConfigured = fmt.Errorf("project service is not configured")

type Project struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	Id        string `json:"id"`
	ProjectId string `json:"projectId"`
	Name      string `json:"name"`
	Done      bool   `json:"done"`
}

type Client interface {
	ListProjects(ctx context.Context) ([]Project, error)          // /v1/project
	ListTasks(ctx context.Context, projectId string) ([]Task, error) // /v1/project/{id}/task
}

type ClientImpl struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string, token string) *ClientImpl {
	return &ClientImpl{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ClientImpl) get(ctx context.Context, url string, response any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("project service returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}

// ListProjects retrieves all projects visible to the configured token.
func (c *ClientImpl) ListProjects(ctx context.Context) ([]Project, error) {
	var response struct {
		Projects []Project `json:"projects"`
	}
	if err := c.get(ctx, c.baseURL+"/v1/project", &response); err != nil {
		return nil, err
	}
	return response.Projects, nil
}

// ListTasks retrieves the tasks of one project.
func (c *ClientImpl) ListTasks(ctx context.Context, projectId string) ([]Task, error) {
	var response struct {
		Tasks []Task `json:"tasks"`
	}
	url := fmt.Sprintf("%s/v1/project/%s/task", c.baseURL, projectId)
	if err := c.get(ctx, url, &response); err != nil {
		return nil, err
	}
	return response.Tasks, nil
}
