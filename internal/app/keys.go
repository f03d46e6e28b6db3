package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newIdempotencyKey builds a server-side key for requests that did not
// supply one. The key only needs to be unique; requester and timestamp are
// kept in it to aid debugging.
func newIdempotencyKey(userID int64, now time.Time) string {
	return fmt.Sprintf("%d-%d-%s", userID, now.UnixMilli(), uuid.NewString())
}
