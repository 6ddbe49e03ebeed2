package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tOgg1/tick/internal/models"
)

// Reference lookup errors.
var (
	ErrTaskRefRequired = errors.New("task reference required")
	ErrTaskNotFound    = errors.New("task not found")
	ErrAmbiguousRef    = errors.New("ambiguous task reference")
)

// minPrefixLen keeps very short prefixes from shadowing positions.
const minPrefixLen = 4

// Find resolves ref to a task. A ref is tried, in order, as an exact id, as a
// 1-based position in the full list, and as a unique id prefix.
func (s *Store) Find(ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Task{}, ErrTaskRefRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(ref); idx >= 0 {
		return s.tasks[idx], nil
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.tasks) {
		return s.tasks[n-1], nil
	}

	if len(ref) >= minPrefixLen {
		var matches []models.Task
		for _, task := range s.tasks {
			if strings.HasPrefix(task.ID, ref) {
				matches = append(matches, task)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return models.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousRef, ref, len(matches))
		}
	}

	return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
}
