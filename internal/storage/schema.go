package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tOgg1/tick/internal/models"
)

const todosSchemaURL = "https://tick.local/schema/todos.json"

const todosSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledTodosSchema = mustCompileTodosSchema()

func mustCompileTodosSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(todosSchemaURL, strings.NewReader(todosSchema)); err != nil {
		panic(fmt.Sprintf("add todos schema: %v", err))
	}
	schema, err := compiler.Compile(todosSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile todos schema: %v", err))
	}
	return schema
}

// ValidatePayload checks an encoded task list against the persisted layout.
// Schema violations are reported as *models.ValidationErrors keyed by the
// offending location (for example tasks[1].completed).
func ValidatePayload(payload []byte) error {
	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	err := compiledTodosSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	validation := &models.ValidationErrors{}
	collectSchemaErrors(validation, ve)
	return validation.Err()
}

func collectSchemaErrors(validation *models.ValidationErrors, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		validation.AddMessage(models.FieldFromPointer(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(validation, cause)
	}
}

// ValidateTasks checks the list invariants the schema cannot express: every
// task has an id and no id repeats.
func ValidateTasks(tasks []models.Task) error {
	validation := &models.ValidationErrors{}
	seen := make(map[string]int, len(tasks))
	for i, task := range tasks {
		if strings.TrimSpace(task.ID) == "" {
			validation.AddTask(i, "id", models.ErrEmptyTaskID)
			continue
		}
		if first, ok := seen[task.ID]; ok {
			validation.AddTask(i, "id", fmt.Errorf("%w %q (also %s)", models.ErrDuplicateTaskID, task.ID, models.TaskField(first, "")))
			continue
		}
		seen[task.ID] = i
	}
	return validation.Err()
}
