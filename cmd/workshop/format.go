package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/workshop/internal/ui"
	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/server"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
)

func formatTodoTable(todos []todo.Todo, now time.Time) string {
	if len(todos) == 0 {
		return "No todos found.\n"
	}
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "PRIORITY", "AGE", "TEXT"}, len(todos))
	for _, item := range todos {
		builder.AddRow([]string{
			strconv.FormatInt(item.ID, 10),
			ui.Checkbox(item.Completed),
			ui.Priority(string(item.Priority)),
			ui.FormatTimeAgo(item.CreatedAt, now),
			ui.TruncateTableCell(item.Text),
		})
	}
	return builder.String()
}

func formatStats(stats todo.Stats) string {
	return fmt.Sprintf("%d total, %d active, %d completed (%d%% done)",
		stats.Total, stats.Active, stats.Completed, stats.CompletionRate)
}

func formatPriorityGroups(groups map[todo.Priority][]todo.Todo) string {
	var builder strings.Builder
	for _, priority := range todo.ValidPriorities() {
		items := groups[priority]
		fmt.Fprintf(&builder, "%s (%d)\n", ui.Heading(string(priority)), len(items))
		for _, item := range items {
			fmt.Fprintf(&builder, "  %s %d %s\n", ui.Checkbox(item.Completed), item.ID, item.Text)
		}
	}
	return builder.String()
}

func formatSession(session server.Session) string {
	if !session.LoggedIn || session.User == nil {
		return "Not logged in\n"
	}
	return formatProfile(*session.User)
}

func formatProfile(u user.User) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(&builder, "%s %d\n", ui.Muted("id:"), u.ID)
	if u.Avatar != "" {
		fmt.Fprintf(&builder, "%s %s\n", ui.Muted("avatar:"), u.Avatar)
	}
	return builder.String()
}

func formatPreferences(prefs user.Preferences) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "theme: %s\n", prefs.Theme)
	fmt.Fprintf(&builder, "notifications: %s\n", onOff(prefs.Notifications))
	fmt.Fprintf(&builder, "auto-save: %s\n", onOff(prefs.AutoSave))
	return builder.String()
}

func formatUserTable(users []user.User) string {
	if len(users) == 0 {
		return "No users found.\n"
	}
	builder := ui.NewTableBuilder([]string{"ID", "NAME", "EMAIL"}, len(users))
	for _, u := range users {
		builder.AddRow([]string{
			strconv.FormatInt(u.ID, 10),
			ui.TruncateTableCell(u.Name),
			ui.TruncateTableCell(u.Email),
		})
	}
	return builder.String()
}

func formatRouteTable(routes []router.Route) string {
	builder := ui.NewTableBuilder([]string{"PATH", "NAME", "LOADING"}, len(routes))
	for _, route := range routes {
		loading := "eager"
		if route.Lazy {
			loading = "lazy"
		}
		builder.AddRow([]string{route.Path, route.Name, loading})
	}
	return builder.String()
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
