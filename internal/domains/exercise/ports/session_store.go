package ports

import (
	"context"
	"errors"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("exercise session not found")

// SessionStore keeps in-flight exercise sessions.
type SessionStore interface {
	Save(ctx context.Context, exercise *domain.Exercise) error
	Get(ctx context.Context, id string) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
	// PurgeExpired drops sessions past their TTL and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
