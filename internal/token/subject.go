package token

import (
	"fmt"

	"github.com/google/uuid"
)

// NewSubjectHandle mints an opaque per-session identifier from the
// account number and a fresh UUID. A new handle is minted on every login
// and refresh; handles are never reused across issuances.
func NewSubjectHandle(number int) string {
	return fmt.Sprintf("%dclitoken%s", number, uuid.NewString())
}
