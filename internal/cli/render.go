package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasktracker/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	statusStyles = map[models.TaskStatus]lipgloss.Style{
		models.StatusNotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
		models.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	}

	statusTitles = map[models.TaskStatus]string{
		models.StatusNotStarted: "To Do",
		models.StatusInProgress: "In Progress",
		models.StatusDone:       "Done",
	}
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// renderPalette shows the suggested project colors.
func renderPalette() string {
	items := make([]string, 0, len(models.ProjectPalette))
	for _, c := range models.ProjectPalette {
		items = append(items, swatch(c)+" "+c)
	}
	return mutedStyle.Render("Colors: ") + strings.Join(items, "  ")
}

// renderStats draws the dashboard cards: project total and per-status counts.
func renderStats(projects int, counts map[models.TaskStatus]int) string {
	cards := []string{cardStyle.Render(fmt.Sprintf("Total Projects\n%d", projects))}
	for _, st := range models.TaskStatuses {
		title := statusStyles[st].Render(statusTitles[st])
		cards = append(cards, cardStyle.Render(fmt.Sprintf("%s\n%d", title, counts[st])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderProjects lists projects as a colored grid.
func renderProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return mutedStyle.Render("No projects. Get started with: project add")
	}
	var b strings.Builder
	for _, p := range projects {
		desc := p.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&b, "%s %s  %s\n    %s\n    %s\n",
			swatch(p.Color), headerStyle.Render(p.Name), mutedStyle.Render(shortID(p.ID)),
			desc, mutedStyle.Render("Created "+p.CreatedAt.Local().Format("Jan 2, 2006")))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBoard groups tasks into status columns.
func renderBoard(tasks []models.Task, projectName func(id string) string) string {
	var b strings.Builder
	for _, st := range models.TaskStatuses {
		b.WriteString(statusStyles[st].Bold(true).Render(statusTitles[st]))
		b.WriteByte('\n')
		n := 0
		for _, t := range tasks {
			if t.Status != st {
				continue
			}
			n++
			line := fmt.Sprintf("  %s %s [%s] %s", mutedStyle.Render(shortID(t.ID)), t.Title, t.Priority, mutedStyle.Render(projectName(t.ProjectID)))
			if t.DueDate != nil {
				line += mutedStyle.Render(" due " + t.DueDate.Format("2006-01-02"))
			}
			b.WriteString(line + "\n")
		}
		if n == 0 {
			b.WriteString(mutedStyle.Render("  (empty)") + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
