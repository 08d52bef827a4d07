// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// FormatTask formats one task row.
// Format: "{MARK} {ID:>4}  {PRIORITY:<6}  {DUE:<10}  {TITLE}\n"
func FormatTask(w io.Writer, t service.Task) {
	due := t.DueDate
	if due == "" {
		due = "-"
	}
	fmt.Fprintf(w, "%s %4s  %s  %-10s  %s\n",
		statusMark(t.Status), t.ID, priorityLabel(t.Priority), due, normalizeTitle(t.Title))
}

// FormatTasks formats a task listing, or a placeholder when empty.
func FormatTasks(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks found")
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatUser formats the authenticated user for whoami.
func FormatUser(w io.Writer, u session.User) {
	fmt.Fprintf(w, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
}

// FormatProfile formats the profile for display.
func FormatProfile(w io.Writer, p service.Profile) {
	fmt.Fprintf(w, "name:    %s\n", p.Name)
	fmt.Fprintf(w, "avatar:  %s\n", p.AvatarURL)
}

// FormatSettings formats the settings for display.
func FormatSettings(w io.Writer, s service.Settings) {
	fmt.Fprintf(w, "theme:     %s\n", s.Theme)
	fmt.Fprintf(w, "ai style:  %s\n", s.AIResponseStyle)
	fmt.Fprintf(w, "language:  %s\n", s.Language)
}

// FormatHistoryItem formats one assistant history row.
func FormatHistoryItem(w io.Writer, h service.HistoryItem) {
	fmt.Fprintf(w, "%4s  %-19s  %s\n", h.ID, h.CreatedAt, normalizeTitle(h.Title))
}

// statusMark returns a colored one-character status indicator.
func statusMark(status string) string {
	switch status {
	case "completed":
		return color.GreenString("✓")
	case "in-progress":
		return color.YellowString("~")
	default:
		return " "
	}
}

// priorityLabel colors high priority red and leaves the rest alone.
func priorityLabel(priority string) string {
	if priority == "high" {
		return color.RedString("%-6s", priority)
	}
	return fmt.Sprintf("%-6s", priority)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
