package cli

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/client"
	"tasktracker/internal/models"
)

func (a *App) register(ctx context.Context) error {
	name, err := a.ask("Name")
	if err != nil {
		return err
	}
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out, a.fd, a.terminal)
	if err != nil {
		return err
	}
	if err := client.ValidateRegistration(email, password, name); err != nil {
		return err
	}

	session, err := a.api.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	return a.startSession(ctx, session)
}

func (a *App) login(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out, a.fd, a.terminal)
	if err != nil {
		return err
	}
	if err := client.ValidateLogin(email, password); err != nil {
		return err
	}

	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.startSession(ctx, session)
}

func (a *App) startSession(ctx context.Context, session client.Session) error {
	a.dash = client.NewDashboard(a.api, session.User)
	if err := a.dash.Load(ctx); err != nil {
		return err
	}
	a.println(okStyle.Render(fmt.Sprintf("Welcome back, %s!", session.User.Name)))
	a.println(renderStats(len(a.dash.Projects), a.dash.StatusCounts()))
	return nil
}

func (a *App) logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.api.SetToken("")
	a.dash = nil
	if err != nil {
		return err
	}
	a.println("Logged out")
	return nil
}

func (a *App) refresh(ctx context.Context) error {
	if err := a.dash.Load(ctx); err != nil {
		return err
	}
	a.println(renderStats(len(a.dash.Projects), a.dash.StatusCounts()))
	return nil
}

func (a *App) project(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: project add | project edit <id> | project rm <id>")
	}
	switch args[0] {
	case "add":
		return a.addProject(ctx)
	case "edit":
		p, err := a.lookupProject(args[1:])
		if err != nil {
			return err
		}
		return a.editProject(ctx, p)
	case "rm", "delete":
		p, err := a.lookupProject(args[1:])
		if err != nil {
			return err
		}
		if err := a.dash.DeleteProject(ctx, p.ID); err != nil {
			return err
		}
		a.println(okStyle.Render("Project deleted: " + p.Name))
		return nil
	}
	return fmt.Errorf("unknown project command %q", args[0])
}

func (a *App) lookupProject(args []string) (models.Project, error) {
	if len(args) == 0 {
		return models.Project{}, errors.New("project id required")
	}
	p, ok := a.dash.Project(args[0])
	if !ok {
		return models.Project{}, fmt.Errorf("no project matches %q", args[0])
	}
	return p, nil
}

func (a *App) addProject(ctx context.Context) error {
	name, err := a.ask("Project name")
	if err != nil {
		return err
	}
	description, err := a.ask("Description")
	if err != nil {
		return err
	}
	a.println(renderPalette())
	color, err := a.askDefault("Color", models.DefaultProjectColor)
	if err != nil {
		return err
	}

	p, err := a.dash.CreateProject(ctx, name, description, color)
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Project created: ") + swatch(p.Color) + " " + p.Name + " " + mutedStyle.Render(shortID(p.ID)))
	return nil
}

func (a *App) editProject(ctx context.Context, p models.Project) error {
	name, err := a.askDefault("Project name", p.Name)
	if err != nil {
		return err
	}
	description, err := a.askDefault("Description", p.Description)
	if err != nil {
		return err
	}
	color, err := a.askDefault("Color", p.Color)
	if err != nil {
		return err
	}

	updated, err := a.dash.UpdateProject(ctx, p.ID, client.ProjectUpdate{Name: &name, Description: &description, Color: &color})
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Project updated: ") + swatch(updated.Color) + " " + updated.Name)
	return nil
}

func (a *App) board(args []string) error {
	tasks := a.dash.Tasks
	if len(args) > 0 {
		p, err := a.lookupProject(args)
		if err != nil {
			return err
		}
		tasks = a.dash.ProjectTasks(p.ID)
	}
	a.println(renderBoard(tasks, a.projectName))
	return nil
}

func (a *App) projectName(id string) string {
	if p, ok := a.dash.Project(id); ok {
		return p.Name
	}
	return shortID(id)
}

func (a *App) task(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: task add | task edit <id> | task status <id> <status> | task rm <id>")
	}
	switch args[0] {
	case "add":
		return a.addTask(ctx)
	case "edit":
		t, err := a.lookupTask(args[1:])
		if err != nil {
			return err
		}
		return a.editTask(ctx, t)
	case "status":
		if len(args) < 3 {
			return errors.New("usage: task status <id> <status>")
		}
		t, err := a.lookupTask(args[1:2])
		if err != nil {
			return err
		}
		st, ok := models.ParseTaskStatus(args[2])
		if !ok {
			return fmt.Errorf("unknown status %q", args[2])
		}
		status := string(st)
		updated, err := a.dash.UpdateTask(ctx, t.ID, client.TaskUpdate{Status: &status})
		if err != nil {
			return err
		}
		a.println(okStyle.Render(fmt.Sprintf("%s -> %s", updated.Title, statusTitles[updated.Status])))
		return nil
	case "rm", "delete":
		t, err := a.lookupTask(args[1:])
		if err != nil {
			return err
		}
		if err := a.dash.DeleteTask(ctx, t.ID); err != nil {
			return err
		}
		a.println(okStyle.Render("Task deleted: " + t.Title))
		return nil
	}
	return fmt.Errorf("unknown task command %q", args[0])
}

func (a *App) lookupTask(args []string) (models.Task, error) {
	if len(args) == 0 {
		return models.Task{}, errors.New("task id required")
	}
	t, ok := a.dash.Task(args[0])
	if !ok {
		return models.Task{}, fmt.Errorf("no task matches %q", args[0])
	}
	return t, nil
}

func (a *App) addTask(ctx context.Context) error {
	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	ref, err := a.ask("Project id")
	if err != nil {
		return err
	}
	p, err := a.lookupProject([]string{ref})
	if err != nil {
		return err
	}
	description, err := a.ask("Description")
	if err != nil {
		return err
	}
	priority, err := a.askDefault("Priority (low, medium, high)", string(models.PriorityMedium))
	if err != nil {
		return err
	}
	due, err := a.ask("Due date (YYYY-MM-DD, optional)")
	if err != nil {
		return err
	}

	t, err := a.dash.CreateTask(ctx, client.NewTask{
		Title:       title,
		ProjectID:   p.ID,
		Description: description,
		Priority:    priority,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Task created: ") + t.Title + " " + mutedStyle.Render(shortID(t.ID)))
	return nil
}

func (a *App) editTask(ctx context.Context, t models.Task) error {
	title, err := a.askDefault("Title", t.Title)
	if err != nil {
		return err
	}
	description, err := a.askDefault("Description", t.Description)
	if err != nil {
		return err
	}
	status, err := a.askDefault("Status", string(t.Status))
	if err != nil {
		return err
	}
	priority, err := a.askDefault("Priority", string(t.Priority))
	if err != nil {
		return err
	}
	current := ""
	if t.DueDate != nil {
		current = t.DueDate.Format("2006-01-02")
	}
	due, err := a.askDefault("Due date ('-' clears)", current)
	if err != nil {
		return err
	}
	if due == "-" {
		due = ""
	}

	updated, err := a.dash.UpdateTask(ctx, t.ID, client.TaskUpdate{
		Title:       &title,
		Description: &description,
		Status:      &status,
		Priority:    &priority,
		DueDate:     &due,
	})
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Task updated: ") + updated.Title)
	return nil
}
