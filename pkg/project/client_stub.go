package project

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu              sync.RWMutex
	projects        []Project
	tasks           map[string][]Task // projectId -> tasks
	listProjectsErr error
	listTasksErr    error
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		tasks: make(map[string][]Task),
	}
}

func (c *ClientStub) ListProjects(ctx context.Context) ([]Project, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.listProjectsErr != nil {
		return nil, c.listProjectsErr
	}

	result := make([]Project, len(c.projects))
	copy(result, c.projects)
	return result, nil
}

func (c *ClientStub) ListTasks(ctx context.Context, projectId string) ([]Task, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.listTasksErr != nil {
		return nil, c.listTasksErr
	}

	tasks, exists := c.tasks[projectId]
	if !exists {
		return []Task{}, nil
	}

	result := make([]Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// Helper methods for test setup

func (c *ClientStub) SetProjects(projects []Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = make([]Project, len(projects))
	copy(c.projects, projects)
}

func (c *ClientStub) SetTasks(projectId string, tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks[projectId] = make([]Task, len(tasks))
	copy(c.tasks[projectId], tasks)
}

func (c *ClientStub) SetListProjectsError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listProjectsErr = err
}

func (c *ClientStub) SetListTasksError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listTasksErr = err
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = nil
	c.tasks = make(map[string][]Task)
	c.listProjectsErr = nil
	c.listTasksErr = nil
}
