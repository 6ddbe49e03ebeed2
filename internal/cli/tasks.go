package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return Exitf(ExitCodeUsage, "task text is required")
			}
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				view := a.store.Add(text)
				tasks := a.store.Tasks()
				added := tasks[len(tasks)-1]
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), added)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s (%s)\n", view.Total, added.Text, itemsLeft(view.Remaining))
				return err
			})
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, filter)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "filter: all|active|completed (default from config)")
	return cmd
}

func runList(cmd *cobra.Command, opts *rootOptions, filter string) error {
	var selected models.Filter
	if strings.TrimSpace(filter) != "" {
		parsed, err := models.ParseFilter(filter)
		if err != nil {
			return Exitf(ExitCodeUsage, "%v", err)
		}
		selected = parsed
	}
	return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
		view := a.store.View()
		if selected != "" {
			view = a.store.SetFilter(selected)
		}
		if opts.jsonOutput {
			return writeJSON(cmd.OutOrStdout(), newListResult(view))
		}
		return writeTaskTable(cmd.OutOrStdout(), view, a.store.Tasks())
	})
}

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between active and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				task, err := resolveTask(a.store, args[0])
				if err != nil {
					return err
				}
				a.store.Toggle(task.ID)
				updated, _ := a.store.Get(task.ID)
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), updated)
				}
				state := "active"
				if updated.Completed {
					state = "completed"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Marked %q %s\n", updated.Text, state)
				return err
			})
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				task, err := resolveTask(a.store, args[0])
				if err != nil {
					return err
				}
				a.store.BeginEdit(task.ID, task.Text)
				a.store.SetEditText(text)
				a.store.CommitEdit()
				updated, _ := a.store.Get(task.ID)
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), updated)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Edited %s: %s\n", updated.ID, updated.Text)
				return err
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				task, err := resolveTask(a.store, args[0])
				if err != nil {
					return err
				}
				view := a.store.Remove(task.ID)
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %q (%s)\n", task.Text, itemsLeft(view.Remaining))
				return err
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				before := a.store.View().Total
				view := a.store.ClearCompleted()
				removed := before - view.Total
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), map[string]int{
						"removed":   removed,
						"remaining": view.Remaining,
					})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed (%s)\n", removed, itemsLeft(view.Remaining))
				return err
			})
		},
	}
}

// resolveTask reports unknown or ambiguous refs that the store itself would
// silently ignore.
func resolveTask(store *todo.Store, ref string) (models.Task, error) {
	task, err := store.Find(ref)
	if err != nil {
		return models.Task{}, resolveError(err)
	}
	return task, nil
}

func resolveError(err error) error {
	if errors.Is(err, todo.ErrTaskRefRequired) {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	return &ExitError{Code: ExitCodeFailure, Err: err}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
