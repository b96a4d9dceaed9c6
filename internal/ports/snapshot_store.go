package ports

import (
	"context"

	"github.com/bnema/emergent-chefs/internal/domain"
)

type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
}
