package repository

import (
	"context"

	"admitpath/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MilestoneRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMilestoneRepository(db *pgxpool.Pool, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MilestoneRepository) BulkInsert(ctx context.Context, tx pgx.Tx, milestones []model.Milestone) error {
	query := `
        INSERT INTO milestones (
            id, roadmap_id, title, description, category, priority,
            base_impact, impact, estimated_minutes, deadline,
            completed, completed_at, efc_specific, order_index, part,
            created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
    `

	for _, m := range milestones {
		_, err := tx.Exec(ctx, query,
			m.ID,
			m.RoadmapID,
			m.Title,
			m.Description,
			m.Category,
			m.Priority,
			m.BaseImpact,
			m.Impact,
			m.EstimatedMinutes,
			m.Deadline,
			m.Completed,
			m.CompletedAt,
			m.EFCSpecific,
			m.OrderIndex,
			m.Part,
			m.CreatedAt,
			m.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert milestone",
				zap.String("milestone_id", m.ID.String()),
				zap.String("title", m.Title),
				zap.Error(err),
			)
			return err
		}
	}

	r.logger.Info("Milestones inserted successfully",
		zap.Int("count", len(milestones)),
	)
	return nil
}

func (r *MilestoneRepository) FindByRoadmapID(ctx context.Context, roadmapID uuid.UUID) ([]model.Milestone, error) {
	query := `
        SELECT id, roadmap_id, title, description, category, priority,
               base_impact, impact, estimated_minutes, deadline,
               completed, completed_at, efc_specific, order_index, part,
               created_at, updated_at
        FROM milestones
        WHERE roadmap_id = $1
        ORDER BY order_index ASC
    `

	rows, err := r.db.Query(ctx, query, roadmapID)
	if err != nil {
		r.logger.Error("Failed to find milestones", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(
			&m.ID,
			&m.RoadmapID,
			&m.Title,
			&m.Description,
			&m.Category,
			&m.Priority,
			&m.BaseImpact,
			&m.Impact,
			&m.EstimatedMinutes,
			&m.Deadline,
			&m.Completed,
			&m.CompletedAt,
			&m.EFCSpecific,
			&m.OrderIndex,
			&m.Part,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan milestone", zap.Error(err))
			return nil, err
		}
		milestones = append(milestones, m)
	}

	return milestones, rows.Err()
}

// UpdateEngineState persists the fields the engine recomputes: completion,
// priority and working impact.
func (r *MilestoneRepository) UpdateEngineState(ctx context.Context, tx pgx.Tx, m model.Milestone) error {
	query := `
        UPDATE milestones
        SET completed = $2, completed_at = $3, priority = $4, impact = $5, updated_at = $6
        WHERE id = $1
    `
	_, err := tx.Exec(ctx, query,
		m.ID,
		m.Completed,
		m.CompletedAt,
		m.Priority,
		m.Impact,
		m.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update milestone state",
			zap.String("milestone_id", m.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
