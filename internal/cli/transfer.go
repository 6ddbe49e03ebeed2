package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/storage"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

type exportTask struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// exportDocument wraps the list for formats without top-level arrays.
type exportDocument struct {
	Tasks []exportTask `json:"tasks" yaml:"tasks" toml:"tasks"`
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as JSON, YAML or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = resolveFormat(format, output, formatJSON)
			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				payload, err := encodeTasks(a.store.Tasks(), format)
				if err != nil {
					return Exitf(ExitCodeUsage, "%v", err)
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(payload)
					return err
				}
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				a.logger.Info().Str("path", output).Str("format", format).Msg("tasks exported")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json|yaml|toml (default from -o extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the task list with the contents of a file",
		Long:  "Replace the task list with tasks read from a JSON, YAML or TOML export. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				payload []byte
				err     error
			)
			if path == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(path)
			}
			if err != nil {
				return Exitf(ExitCodeFailure, "read %s: %v", path, err)
			}

			tasks, err := decodeTasks(payload, resolveFormat(format, path, formatJSON))
			if err != nil {
				return Exitf(ExitCodeFailure, "import %s: %v", path, err)
			}

			return withApp(contextOf(cmd), opts, modeCommand, func(a *app) error {
				view := a.store.Replace(tasks)
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), newListResult(view))
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%s)\n", view.Total, itemsLeft(view.Remaining))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: json|yaml|toml (default from extension)")
	return cmd
}

// resolveFormat prefers an explicit format, then the file extension.
func resolveFormat(explicit, path, fallback string) string {
	if explicit = strings.ToLower(strings.TrimSpace(explicit)); explicit != "" {
		if explicit == "yml" {
			return formatYAML
		}
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	case ".json":
		return formatJSON
	}
	return fallback
}

func encodeTasks(tasks []models.Task, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		payload, err := json.MarshalIndent(models.CloneTasks(tasks), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(payload, '\n'), nil
	case formatYAML:
		return yaml.Marshal(toDocument(tasks))
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(toDocument(tasks)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json, yaml or toml)", format)
	}
}

// errNoTaskList rejects documents without a tasks key. Accepting them would
// replace the list with nothing.
var errNoTaskList = errors.New("document has no tasks list")

// importDocument tells an absent tasks key apart from an empty list.
type importDocument struct {
	Tasks *[]exportTask `json:"tasks" yaml:"tasks" toml:"tasks"`
}

func decodeTasks(payload []byte, format string) ([]models.Task, error) {
	var doc importDocument
	switch format {
	case formatJSON:
		trimmed := bytes.TrimSpace(payload)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return storage.Decode(trimmed)
		}
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
		if decoder.More() {
			return nil, errors.New("unexpected data after document")
		}
	case formatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(payload))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errNoTaskList
			}
			return nil, err
		}
	case formatTOML:
		md, err := toml.Decode(string(payload), &doc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported format %q (want json, yaml or toml)", format)
	}
	if doc.Tasks == nil {
		return nil, errNoTaskList
	}
	tasks := fromDocument(*doc.Tasks)
	return tasks, storage.ValidateTasks(tasks)
}

func toDocument(tasks []models.Task) exportDocument {
	doc := exportDocument{Tasks: make([]exportTask, 0, len(tasks))}
	for _, task := range tasks {
		doc.Tasks = append(doc.Tasks, exportTask(task))
	}
	return doc
}

func fromDocument(items []exportTask) []models.Task {
	tasks := make([]models.Task, 0, len(items))
	for _, task := range items {
		tasks = append(tasks, models.Task(task))
	}
	return tasks
}
