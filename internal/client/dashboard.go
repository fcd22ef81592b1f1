package client

import (
	"context"
	"slices"
	"strings"

	"tasktracker/internal/models"
)

// Dashboard is the view state of a signed-in user: the projects and tasks
// of the last successful fetch. Mutations touch the local lists only after
// the server confirmed them, and lists stay ordered by server created_at,
// newest first.
type Dashboard struct {
	api      *Client
	User     models.PublicUser
	Projects []models.Project
	Tasks    []models.Task
}

// NewDashboard binds a dashboard to an authenticated client.
func NewDashboard(api *Client, user models.PublicUser) *Dashboard {
	return &Dashboard{api: api, User: user}
}

// Load replaces the local state with the server's. On error the previous
// state is kept.
func (d *Dashboard) Load(ctx context.Context) error {
	projects, err := d.api.ListProjects(ctx)
	if err != nil {
		return err
	}
	tasks, err := d.api.ListTasks(ctx, models.TaskFilter{})
	if err != nil {
		return err
	}
	d.Projects, d.Tasks = projects, tasks
	sortProjects(d.Projects)
	sortTasks(d.Tasks)
	return nil
}

// StatusCounts aggregates the loaded tasks per status.
func (d *Dashboard) StatusCounts() map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		counts[st] = 0
	}
	for _, t := range d.Tasks {
		counts[t.Status]++
	}
	return counts
}

// TasksByStatus returns the loaded tasks in one board column.
func (d *Dashboard) TasksByStatus(status models.TaskStatus) []models.Task {
	var out []models.Task
	for _, t := range d.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// ProjectTasks returns the loaded tasks of one project.
func (d *Dashboard) ProjectTasks(projectID string) []models.Task {
	var out []models.Task
	for _, t := range d.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Project looks up a loaded project by id or unique id prefix.
func (d *Dashboard) Project(ref string) (models.Project, bool) {
	i := findByRef(d.Projects, ref, func(p models.Project) string { return p.ID })
	if i < 0 {
		return models.Project{}, false
	}
	return d.Projects[i], true
}

// Task looks up a loaded task by id or unique id prefix.
func (d *Dashboard) Task(ref string) (models.Task, bool) {
	i := findByRef(d.Tasks, ref, func(t models.Task) string { return t.ID })
	if i < 0 {
		return models.Task{}, false
	}
	return d.Tasks[i], true
}

// CreateProject validates the form, creates the project and adds it to the
// local list.
func (d *Dashboard) CreateProject(ctx context.Context, name, description, color string) (models.Project, error) {
	if err := ValidateProjectName(name); err != nil {
		return models.Project{}, err
	}
	p, err := d.api.CreateProject(ctx, name, description, color)
	if err != nil {
		return models.Project{}, err
	}
	d.Projects = append(d.Projects, p)
	sortProjects(d.Projects)
	return p, nil
}

// UpdateProject applies changes and replaces the local copy.
func (d *Dashboard) UpdateProject(ctx context.Context, id string, changes ProjectUpdate) (models.Project, error) {
	if changes.Name != nil {
		if err := ValidateProjectName(*changes.Name); err != nil {
			return models.Project{}, err
		}
	}
	p, err := d.api.UpdateProject(ctx, id, changes)
	if err != nil {
		return models.Project{}, err
	}
	if i := slices.IndexFunc(d.Projects, func(x models.Project) bool { return x.ID == p.ID }); i >= 0 {
		d.Projects[i] = p
	} else {
		d.Projects = append(d.Projects, p)
		sortProjects(d.Projects)
	}
	return p, nil
}

// DeleteProject deletes the project and drops it and its tasks locally.
func (d *Dashboard) DeleteProject(ctx context.Context, id string) error {
	if err := d.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	d.Projects = slices.DeleteFunc(d.Projects, func(p models.Project) bool { return p.ID == id })
	d.Tasks = slices.DeleteFunc(d.Tasks, func(t models.Task) bool { return t.ProjectID == id })
	return nil
}

// CreateTask creates a task and adds it to the local list.
func (d *Dashboard) CreateTask(ctx context.Context, task NewTask) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrTitleRequired
	}
	t, err := d.api.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	d.Tasks = append(d.Tasks, t)
	sortTasks(d.Tasks)
	return t, nil
}

// UpdateTask applies changes and replaces the local copy.
func (d *Dashboard) UpdateTask(ctx context.Context, id string, changes TaskUpdate) (models.Task, error) {
	t, err := d.api.UpdateTask(ctx, id, changes)
	if err != nil {
		return models.Task{}, err
	}
	if i := slices.IndexFunc(d.Tasks, func(x models.Task) bool { return x.ID == t.ID }); i >= 0 {
		d.Tasks[i] = t
	} else {
		d.Tasks = append(d.Tasks, t)
		sortTasks(d.Tasks)
	}
	return t, nil
}

// DeleteTask deletes the task and drops it locally.
func (d *Dashboard) DeleteTask(ctx context.Context, id string) error {
	if err := d.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	d.Tasks = slices.DeleteFunc(d.Tasks, func(t models.Task) bool { return t.ID == id })
	return nil
}

func sortProjects(projects []models.Project) {
	slices.SortStableFunc(projects, func(a, b models.Project) int { return b.CreatedAt.Compare(a.CreatedAt) })
}

func sortTasks(tasks []models.Task) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int { return b.CreatedAt.Compare(a.CreatedAt) })
}

// findByRef returns the index of the item whose id equals ref, or whose id
// is the only one starting with ref. It returns -1 otherwise.
func findByRef[T any](items []T, ref string, id func(T) string) int {
	if ref == "" {
		return -1
	}
	match, prefixed := -1, 0
	for i, item := range items {
		switch v := id(item); {
		case v == ref:
			return i
		case strings.HasPrefix(v, ref):
			match = i
			prefixed++
		}
	}
	if prefixed != 1 {
		return -1
	}
	return match
}
