package repository

import (
	"context"
	"time"

	"admitpath/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RoadmapRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRoadmapRepository(db *pgxpool.Pool, logger *zap.Logger) *RoadmapRepository {
	return &RoadmapRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RoadmapRepository) Insert(ctx context.Context, tx pgx.Tx, roadmap *model.Roadmap) error {
	r.logger.Debug("Inserting roadmap",
		zap.String("roadmap_id", roadmap.ID.String()),
		zap.Int("user_id", roadmap.UserID),
	)

	query := `
        INSERT INTO roadmaps (id, user_id, total_progress, last_updated, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := tx.Exec(ctx, query,
		roadmap.ID,
		roadmap.UserID,
		roadmap.TotalProgress,
		roadmap.LastUpdated,
		roadmap.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert roadmap", zap.Error(err))
		return err
	}

	r.logger.Info("Roadmap inserted successfully",
		zap.String("roadmap_id", roadmap.ID.String()),
		zap.Int("user_id", roadmap.UserID),
	)
	return nil
}

// FindByID loads the roadmap header; milestones are loaded separately.
func (r *RoadmapRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Roadmap, error) {
	query := `
        SELECT id, user_id, total_progress, last_updated, created_at
        FROM roadmaps
        WHERE id = $1
    `

	var roadmap model.Roadmap
	err := r.db.QueryRow(ctx, query, id).Scan(
		&roadmap.ID,
		&roadmap.UserID,
		&roadmap.TotalProgress,
		&roadmap.LastUpdated,
		&roadmap.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to find roadmap",
			zap.String("roadmap_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &roadmap, nil
}

func (r *RoadmapRepository) FindByUserID(ctx context.Context, userID int) (*model.Roadmap, error) {
	query := `
        SELECT id, user_id, total_progress, last_updated, created_at
        FROM roadmaps
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `

	var roadmap model.Roadmap
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&roadmap.ID,
		&roadmap.UserID,
		&roadmap.TotalProgress,
		&roadmap.LastUpdated,
		&roadmap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &roadmap, nil
}

func (r *RoadmapRepository) UpdateState(ctx context.Context, tx pgx.Tx, id uuid.UUID, totalProgress float64, lastUpdated time.Time) error {
	query := `
        UPDATE roadmaps
        SET total_progress = $2, last_updated = $3
        WHERE id = $1
    `
	_, err := tx.Exec(ctx, query, id, totalProgress, lastUpdated)
	if err != nil {
		r.logger.Error("Failed to update roadmap state",
			zap.String("roadmap_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ListIDsWithDeadlinesWithin returns roadmaps holding at least one incomplete
// milestone due inside the window (overdue included). Used by the deadline
// sweeper.
func (r *RoadmapRepository) ListIDsWithDeadlinesWithin(ctx context.Context, days int) ([]uuid.UUID, error) {
	query := `
        SELECT DISTINCT roadmap_id
        FROM milestones
        WHERE completed = FALSE
        AND deadline IS NOT NULL
        AND deadline <= NOW() + ($1 * INTERVAL '1 day')
    `

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		r.logger.Error("Failed to list roadmaps with upcoming deadlines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan roadmap id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
