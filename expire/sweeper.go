// Package expire marks overdue workouts as expired. It is a pure consumer
// of the row store: select and update only, no storage logic.
package expire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/setbook/sheetstore/store"
)

// StatusExpired is the status written onto overdue workouts.
const StatusExpired = "expired"

// RowStore is the store surface the sweeper consumes.
type RowStore interface {
	Select(ctx context.Context, table string, q *store.Query) ([]store.Record, error)
	Update(ctx context.Context, table string, partial store.Record, eq store.Eq) error
}

// Sweeper walks a user's workouts and expires the ones whose expires_at
// horizon has passed.
type Sweeper struct {
	store  RowStore
	logger *slog.Logger
	now    func() time.Time
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(s RowStore, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// Sweep expires every overdue workout of the user and returns how many
// rows it updated. Individual update failures are logged and skipped so
// one stuck row cannot block the rest of the sweep.
func (s *Sweeper) Sweep(ctx context.Context, userID string) (int, error) {
	workouts, err := s.store.Select(ctx, "workouts", &store.Query{
		Eq: &store.Eq{Column: "user_id", Value: userID},
	})
	if err != nil {
		return 0, fmt.Errorf("select workouts: %w", err)
	}

	now := s.now()
	expired := 0
	for _, w := range workouts {
		if w["status"] == StatusExpired {
			continue
		}
		at, ok := asUnix(w["expires_at"])
		if !ok || at > now.Unix() {
			continue
		}
		id, _ := w["id"].(string)
		if id == "" {
			continue
		}

		err := s.store.Update(ctx, "workouts", store.Record{
			"status":     StatusExpired,
			"updated_at": now.UTC().Format(time.RFC3339),
		}, store.Eq{Column: "id", Value: id})
		if err != nil {
			s.logger.Warn("failed to expire workout",
				"workout", id,
				"error", err,
			)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("expired workouts",
			"user", userID,
			"count", expired,
		)
	}
	return expired, nil
}

// asUnix reads an epoch-seconds cell value.
func asUnix(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	}
	return 0, false
}
