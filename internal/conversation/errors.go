package conversation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrStreamIncomplete is returned by Commit when the token stream was not
// consumed to its terminal end-of-stream signal. Nothing is persisted.
var ErrStreamIncomplete = errors.New("dialogue stream not fully consumed")

// NotFoundError reports a missing screening, job, or candidate record.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
