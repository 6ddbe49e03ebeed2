package todo

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// maxIDRetries bounds how often a colliding id is regenerated before falling
// back to a random one.
const maxIDRetries = 10

// IDGenerator derives a task id from its creation time.
type IDGenerator func(time.Time) string

// TimestampID formats the creation time as Unix milliseconds.
func TimestampID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// UUIDGenerator ignores the creation time and returns a random UUID.
func UUIDGenerator(time.Time) string {
	return uuid.NewString()
}

// nextIDLocked returns an id not used by any task in the list. Creation times
// are kept strictly increasing so ids from TimestampID never repeat within a
// session.
func (s *Store) nextIDLocked() string {
	t := s.now()
	if !t.After(s.lastIDAt) {
		t = s.lastIDAt.Add(time.Millisecond)
	}
	for i := 0; i < maxIDRetries; i++ {
		s.lastIDAt = t
		id := s.idGenerator(t)
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
		t = t.Add(time.Millisecond)
	}
	return uuid.NewString()
}
