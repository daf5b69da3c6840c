package main

import (
	"fmt"
	"strconv"
	"time"

	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/server"
	"github.com/amonks/workshop/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos on the workshop server",
}

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos.

Without --filter, the server's current filter decides which todos are shown.
Passing --filter lists that partition without changing the server's filter.`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runTodoList,
}

var (
	todoListFilter string
	todoListOutput outputFormat
)

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var (
	todoAddPriority string
	todoAddOutput   outputFormat
)

// todo toggle
var todoToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a todo between completed and active",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoToggle,
}

// todo remove
var todoRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Remove a todo",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoRemove,
}

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo's text, priority or completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoUpdate,
}

var (
	todoUpdateText      string
	todoUpdatePriority  string
	todoUpdateCompleted bool
	todoUpdateOutput    outputFormat
)

// todo clear
var todoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove completed todos",
	Args:  cobra.NoArgs,
	RunE:  runTodoClear,
}

// todo mark-all
var todoMarkAllCmd = &cobra.Command{
	Use:   "mark-all",
	Short: "Mark every todo completed",
	Args:  cobra.NoArgs,
	RunE:  runTodoMarkAll,
}

var todoMarkAllIncomplete bool

// todo filter
var todoFilterCmd = &cobra.Command{
	Use:   "filter <all|active|completed>",
	Short: "Set the server's todo filter",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoFilter,
}

// todo stats
var todoStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo counts and the completion rate",
	Args:  cobra.NoArgs,
	RunE:  runTodoStats,
}

var todoStatsOutput outputFormat

// todo by-priority
var todoByPriorityCmd = &cobra.Command{
	Use:   "by-priority",
	Short: "List todos grouped by priority",
	Args:  cobra.NoArgs,
	RunE:  runTodoByPriority,
}

var todoByPriorityOutput outputFormat

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoListCmd, todoAddCmd, todoToggleCmd, todoRemoveCmd, todoUpdateCmd,
		todoClearCmd, todoMarkAllCmd, todoFilterCmd, todoStatsCmd, todoByPriorityCmd)

	todoListCmd.Flags().StringVarP(&todoListFilter, "filter", "f", "", "List all, active or completed todos")
	addOutputFlags(todoListCmd, &todoListOutput)

	todoAddCmd.Flags().StringVarP(&todoAddPriority, "priority", "p", string(todo.PriorityMedium), "Priority (low, medium, high)")
	addOutputFlags(todoAddCmd, &todoAddOutput)

	todoUpdateCmd.Flags().StringVar(&todoUpdateText, "text", "", "New text")
	todoUpdateCmd.Flags().StringVarP(&todoUpdatePriority, "priority", "p", "", "New priority (low, medium, high)")
	todoUpdateCmd.Flags().BoolVar(&todoUpdateCompleted, "completed", false, "Set completion (use --completed=false to reopen)")
	addOutputFlags(todoUpdateCmd, &todoUpdateOutput)
	addFlagAliases(priorityFlagAliases, todoAddCmd, todoUpdateCmd)

	todoMarkAllCmd.Flags().BoolVar(&todoMarkAllIncomplete, "incomplete", false, "Mark every todo active instead")

	addOutputFlags(todoStatsCmd, &todoStatsOutput)
	addOutputFlags(todoByPriorityCmd, &todoByPriorityOutput)
}

func runTodoList(cmd *cobra.Command, _ []string) error {
	view := server.ViewFiltered
	if !internalstrings.IsBlank(todoListFilter) {
		filter, err := todo.ParseFilter(todoListFilter)
		if err != nil {
			return err
		}
		view = string(filter)
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	list, err := client.ListTodos(cmd.Context(), view)
	if err != nil {
		return err
	}
	if handled, err := todoListOutput.write(cmd.OutOrStdout(), list); handled {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatTodoTable(list.Todos, time.Now()))
	fmt.Fprintln(out, formatStats(list.Stats))
	return nil
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	priority, err := todo.ParsePriority(todoAddPriority)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	created, added, err := client.AddTodo(cmd.Context(), args[0], priority)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("todo text is required")
	}
	if handled, err := todoAddOutput.write(cmd.OutOrStdout(), created); handled {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added todo %d: %s\n", created.ID, created.Text)
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	toggled, found, err := client.ToggleTodo(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("todo %d not found", id)
	}
	state := "reopened"
	if toggled.Completed {
		state = "completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Todo %d %s\n", toggled.ID, state)
	return nil
}

func runTodoRemove(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	removed, err := client.RemoveTodo(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("todo %d not found", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed todo %d\n", id)
	return nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	if !hasChangedFlags(cmd, "text", "priority", "completed") {
		return fmt.Errorf("nothing to update: pass --text, --priority or --completed")
	}
	var opts todo.UpdateOptions
	if cmd.Flags().Changed("text") {
		if internalstrings.IsBlank(todoUpdateText) {
			return fmt.Errorf("todo text cannot be blank")
		}
		opts.Text = &todoUpdateText
	}
	if cmd.Flags().Changed("priority") {
		priority, err := todo.ParsePriority(todoUpdatePriority)
		if err != nil {
			return err
		}
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("completed") {
		opts.Completed = &todoUpdateCompleted
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	updated, found, err := client.UpdateTodo(cmd.Context(), id, opts)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("todo %d not found", id)
	}
	if handled, err := todoUpdateOutput.write(cmd.OutOrStdout(), updated); handled {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatTodoTable([]todo.Todo{updated}, time.Now()))
	return nil
}

func runTodoClear(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	removed, err := client.ClearCompleted(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed %s\n", removed, pluralize(removed, "todo", "todos"))
	return nil
}

func runTodoMarkAll(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	stats, err := client.MarkAll(cmd.Context(), !todoMarkAllIncomplete)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatStats(stats))
	return nil
}

func runTodoFilter(cmd *cobra.Command, args []string) error {
	filter, err := todo.ParseFilter(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	applied, err := client.SetFilter(cmd.Context(), filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Filter set to %s\n", applied)
	return nil
}

func runTodoStats(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	stats, err := client.Stats(cmd.Context())
	if err != nil {
		return err
	}
	if handled, err := todoStatsOutput.write(cmd.OutOrStdout(), stats); handled {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatStats(stats))
	return nil
}

func runTodoByPriority(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	groups, err := client.TodosByPriority(cmd.Context())
	if err != nil {
		return err
	}
	if handled, err := todoByPriorityOutput.write(cmd.OutOrStdout(), groups); handled {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatPriorityGroups(groups))
	return nil
}

func parseTodoID(value string) (int64, error) {
	id, err := strconv.ParseInt(internalstrings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", value)
	}
	return id, nil
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
