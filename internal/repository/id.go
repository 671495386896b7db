package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newID builds an id from the entity kind, the current timestamp and a
// random suffix, e.g. "task-1756555200000-9f3b2c1a". Collisions are treated
// as negligible under ordinary client-generated load, not impossible.
func newID(kind string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixMilli(), suffix)
}
