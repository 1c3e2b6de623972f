package repository

import (
	"context"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionStore holds per-extract-job item bundles until the client collects
// them. Take is destructive: a session can be read exactly once, an unknown
// id yields (nil, nil). Implementations must be safe for concurrent use by
// many workers and client callbacks.
type SessionStore interface {
	Put(ctx context.Context, session *model.Session) error
	Take(ctx context.Context, id string) (*model.Session, error)
}

// ExtractionLog records one audit row per stored session.
type ExtractionLog interface {
	Create(ctx context.Context, e model.Extraction) error
	FindByGuid(ctx context.Context, guid string) ([]*model.Extraction, error)
}

type Repository struct {
	Sessions    SessionStore
	Extractions ExtractionLog
}

func New(sessions SessionStore, db *pgxpool.Pool) *Repository {
	return &Repository{
		Sessions:    sessions,
		Extractions: postgres.NewExtractionRepo(db),
	}
}
