package postgres

import (
	"context"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExtractionRepo struct {
	db *pgxpool.Pool
}

func NewExtractionRepo(db *pgxpool.Pool) *ExtractionRepo {
	return &ExtractionRepo{db: db}
}

func (r *ExtractionRepo) Create(ctx context.Context, e model.Extraction) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO extractions(session_id, guid, hub_id, project_id, folder_id, data_type, item_count) VALUES($1, $2, $3, $4, $5, $6, $7)",
		e.SessionID, e.Guid, e.HubID, e.ProjectID, e.FolderID, e.DataType, e.ItemCount,
	)
	return err
}

func (r *ExtractionRepo) FindByGuid(ctx context.Context, guid string) ([]*model.Extraction, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT session_id, guid, hub_id, project_id, folder_id, data_type, item_count, created_at FROM extractions WHERE guid = $1 ORDER BY created_at",
		guid,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*model.Extraction
	for rows.Next() {
		var e model.Extraction
		if err := rows.Scan(&e.SessionID, &e.Guid, &e.HubID, &e.ProjectID, &e.FolderID, &e.DataType, &e.ItemCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		extractions = append(extractions, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return extractions, nil
}
