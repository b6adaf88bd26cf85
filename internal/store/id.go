package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a creation-timestamp derived identifier. The millisecond
// prefix keeps ids roughly sortable by creation time; the random suffix
// guards same-millisecond collisions.
func NewID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%d-%s", t.UnixMilli(), suffix)
}
