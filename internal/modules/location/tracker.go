// README: Geolocation tracker; one-shot fix plus a cancellable watch stream.
package location

import (
	"context"
	"errors"

	"campusride/internal/types"
)

// ErrNoLocation is returned when the platform denies or cannot resolve a fix.
// Callers log it and do not retry the continuous stream.
var ErrNoLocation = errors.New("no location fix available")

// Subscription is the handle for an active watch. Release stops delivery;
// it is safe to call more than once.
type Subscription interface {
	Release()
}

// Source abstracts the platform geolocation provider. Watch callbacks are
// delivered off the caller's goroutine and must not be blocked on.
type Source interface {
	Current(ctx context.Context) (types.Point, error)
	Watch(onUpdate func(types.Point), onError func(error)) (Subscription, error)
}
