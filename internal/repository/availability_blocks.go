package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

func (r *Repository) CreateAvailabilityBlock(block *domain.AvailabilityBlock) error {
	query := `
		INSERT INTO availability_blocks (
			contractor_id,
			tech_id,
			type,
			title,
			start_date,
			end_date,
			start_time,
			end_time,
			is_recurring,
			recurrence_rule,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if block.Status == "" {
		block.Status = domain.BlockActive
	}

	args := []any{
		block.ContractorID,
		block.TechID,
		block.Type,
		block.Title,
		block.StartDate,
		block.EndDate,
		block.StartTime,
		block.EndTime,
		block.IsRecurring,
		nullString(block.RecurrenceRule),
		block.Status,
	}
	dst := []any{&block.ID, &block.CreatedAt, &block.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

const blockColumns = `
	contractor_id,
	tech_id,
	type,
	title,
	start_date,
	end_date,
	start_time,
	end_time,
	is_recurring,
	recurrence_rule,
	status,
	created_at,
	version
`

func scanBlock(block *domain.AvailabilityBlock, scan func(dst ...any) error) error {
	var rule sql.NullString

	dst := []any{
		&block.ContractorID,
		&block.TechID,
		&block.Type,
		&block.Title,
		&block.StartDate,
		&block.EndDate,
		&block.StartTime,
		&block.EndTime,
		&block.IsRecurring,
		&rule,
		&block.Status,
		&block.CreatedAt,
		&block.Version,
	}
	if err := scan(dst...); err != nil {
		return err
	}

	if rule.Valid {
		block.RecurrenceRule = rule.String
	}

	return nil
}

func (r *Repository) GetAvailabilityBlockByID(id int64) (*domain.AvailabilityBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM availability_blocks WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	block := &domain.AvailabilityBlock{ID: id}
	row := r.dbpool.QueryRowContext(ctx, query, id)
	if err := scanBlock(block, row.Scan); err != nil {
		return nil, err
	}

	return block, nil
}

// ListActiveAvailabilityBlocks returns the contractor's active blocks.
// Cancelled blocks are soft-deleted rows and never returned here.
func (r *Repository) ListActiveAvailabilityBlocks(contractorID string) ([]*domain.AvailabilityBlock, error) {
	query := `SELECT id, ` + blockColumns + ` FROM availability_blocks WHERE contractor_id = $1 AND status = $2 ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, contractorID, domain.BlockActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]*domain.AvailabilityBlock, 0)
	for rows.Next() {
		block := &domain.AvailabilityBlock{}
		scan := func(dst ...any) error {
			return rows.Scan(append([]any{&block.ID}, dst...)...)
		}
		if err := scanBlock(block, scan); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}

// CancelAvailabilityBlock soft-deletes a block by flipping its status.
func (r *Repository) CancelAvailabilityBlock(block *domain.AvailabilityBlock) error {
	query := `
		UPDATE availability_blocks
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	block.Status = domain.BlockCancelled
	args := []any{block.Status, block.ID, block.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&block.Version); err != nil {
		return err
	}

	return nil
}
