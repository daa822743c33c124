package application

import "context"

// Sender delivers a rendered confirmation. Implementations must not be
// relied on for ordering correctness; delivery is best effort.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
