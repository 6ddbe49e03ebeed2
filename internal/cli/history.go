package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
)

const defaultHistoryLimit = 20

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [ref]",
		Short: "Show recent task changes",
		Long: "Show recent task changes recorded by the sqlite backend (storage.history).\n" +
			"With a ref, show the changes to that task. A removed task can be named by its id.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return Exitf(ExitCodeUsage, "--limit must be positive")
			}
			ctx := contextOf(cmd)
			return withApp(ctx, opts, modeCommand, func(a *app) error {
				if a.events == nil {
					return Exitf(ExitCodeFailure, "history requires the sqlite backend with storage.history enabled")
				}

				var (
					recorded []*models.Event
					total    int64
					err      error
				)
				if len(args) == 1 {
					taskID, refErr := historyTaskID(a.store, args[0])
					if refErr != nil {
						return refErr
					}
					recorded, err = a.events.ListByEntity(ctx, taskID)
					if err != nil {
						return fmt.Errorf("load history: %w", err)
					}
					total = int64(len(recorded))
					if len(recorded) > limit {
						recorded = recorded[len(recorded)-limit:]
					}
				} else {
					if recorded, err = a.events.Recent(ctx, limit); err != nil {
						return fmt.Errorf("load history: %w", err)
					}
					if total, err = a.events.Count(ctx); err != nil {
						return fmt.Errorf("count history: %w", err)
					}
				}

				if opts.jsonOutput {
					if recorded == nil {
						recorded = []*models.Event{}
					}
					return writeJSON(cmd.OutOrStdout(), recorded)
				}
				if len(recorded) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No history.")
					return err
				}
				if err := writeHistoryTable(cmd.OutOrStdout(), recorded); err != nil {
					return err
				}
				if int64(len(recorded)) >= total {
					return nil
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d events.\n", len(recorded), total)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of events to show")
	return cmd
}

// historyTaskID resolves ref against the current list. A ref that matches no
// live task is taken as the id of a removed one.
func historyTaskID(store *todo.Store, ref string) (string, error) {
	task, err := store.Find(ref)
	switch {
	case err == nil:
		return task.ID, nil
	case errors.Is(err, todo.ErrTaskNotFound):
		return strings.TrimSpace(ref), nil
	default:
		return "", resolveError(err)
	}
}

func describePayload(event *models.Event) string {
	if len(event.Payload) == 0 {
		return ""
	}
	switch event.EntityType {
	case models.EntityTypeTask:
		var payload models.TaskPayload
		if err := json.Unmarshal(event.Payload, &payload); err == nil {
			return fmt.Sprintf("%s %q", formatStatus(payload.Completed), payload.Text)
		}
	case models.EntityTypeList:
		var payload models.BulkPayload
		if err := json.Unmarshal(event.Payload, &payload); err == nil {
			return fmt.Sprintf("%d tasks", payload.Count)
		}
	}
	return string(event.Payload)
}
