// Package cli is the interactive terminal front-end of the tracker: login
// and registration forms, the dashboard counts, the project list and the
// task board.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"tasktracker/internal/client"
)

// App holds the session of one CLI run.
type App struct {
	api      *client.Client
	dash     *client.Dashboard
	reader   *bufio.Reader
	out      io.Writer
	fd       int
	terminal bool
}

// New creates an App reading commands from in and writing to out. When in
// is a terminal, passwords are read without echo.
func New(api *client.Client, in io.Reader, out io.Writer) *App {
	a := &App{api: api, reader: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.fd, a.terminal = int(f.Fd()), true
	}
	return a
}

func (a *App) isLoggedIn() bool {
	return a.dash != nil
}

func (a *App) prompt() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("tracker (%s)> ", a.dash.User.Email)
	}
	return "tracker> "
}

// Run reads and executes commands until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	a.println(headerStyle.Render("Task Manager") + mutedStyle.Render(" (type 'help' for commands)"))
	if err := a.api.Health(ctx); err != nil {
		a.printErr(err)
	}

	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "exit" || parts[0] == "quit" {
			return nil
		}
		if err := a.Execute(ctx, parts[0], parts[1:]); err != nil {
			a.printErr(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs one command.
func (a *App) Execute(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	}

	if !a.isLoggedIn() {
		return errors.New("please login or register first")
	}

	switch cmd {
	case "logout":
		return a.logout(ctx)
	case "refresh":
		return a.refresh(ctx)
	case "stats":
		a.println(renderStats(len(a.dash.Projects), a.dash.StatusCounts()))
		return nil
	case "projects":
		a.println(renderProjects(a.dash.Projects))
		return nil
	case "project":
		return a.project(ctx, args)
	case "tasks", "board":
		return a.board(args)
	case "task":
		return a.task(ctx, args)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *App) help() {
	if !a.isLoggedIn() {
		a.println("Available commands: register, login, exit")
		return
	}
	a.println(strings.Join([]string{
		"Available commands:",
		"  stats                         task counts per status",
		"  projects                      list projects",
		"  project add                   create a project",
		"  project edit <id>             edit a project",
		"  project rm <id>               delete a project and its tasks",
		"  tasks [project-id]            show the task board",
		"  task add                      create a task",
		"  task edit <id>                edit a task",
		"  task status <id> <status>     move a task (not-started, in-progress, done)",
		"  task rm <id>                  delete a task",
		"  refresh                       reload from the server",
		"  logout, exit",
	}, "\n"))
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printErr(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		a.println(errorStyle.Render("error: " + apiErr.Message))
		return
	}
	a.println(errorStyle.Render("error: " + err.Error()))
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askDefault(prompt, current string) (string, error) {
	return GetTextWithDefault(a.reader, prompt, current, a.out)
}
