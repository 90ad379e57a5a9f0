package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/envioscan/internal/db"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
)

// SQLiteBatchRepo implements BatchRepo using the batch_reports table.
// States are stored in the same encoding as the PDF Subject payload.
type SQLiteBatchRepo struct {
	db db.DBTX
}

// NewSQLiteBatchRepo creates a new SQLiteBatchRepo.
func NewSQLiteBatchRepo(conn db.DBTX) *SQLiteBatchRepo {
	return &SQLiteBatchRepo{db: conn}
}

// Add appends r after every existing report. Duplicates are allowed.
func (r *SQLiteBatchRepo) Add(ctx context.Context, b *domain.BatchReport) error {
	payload, err := report.Encode(b.State)
	if err != nil {
		return fmt.Errorf("encoding batch report %s: %w", b.ID, err)
	}

	query := `INSERT INTO batch_reports (id, seq, source, author, payload, added_at, format)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM batch_reports), ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		b.ID,
		b.Source,
		b.Author(),
		payload,
		formatTime(b.AddedAt),
		b.Format,
	)
	if err != nil {
		return fmt.Errorf("inserting batch report: %w", err)
	}
	return nil
}

func (r *SQLiteBatchRepo) List(ctx context.Context) ([]*domain.BatchReport, error) {
	query := `SELECT id, source, format, payload, added_at FROM batch_reports ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing batch reports: %w", err)
	}
	defer rows.Close()

	var out []*domain.BatchReport
	for rows.Next() {
		var (
			b       domain.BatchReport
			payload string
			addedAt string
		)
		if err := rows.Scan(&b.ID, &b.Source, &b.Format, &payload, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning batch report: %w", err)
		}
		state, err := report.DecodeStrict(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding batch report %s: %w", b.ID, err)
		}
		b.State = state
		b.AddedAt = parseTime(addedAt)
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *SQLiteBatchRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM batch_reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting batch reports: %w", err)
	}
	return n, nil
}

func (r *SQLiteBatchRepo) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM batch_reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting batch report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting batch report: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("batch report %s: %w", id, ErrNotFound)
	}
	return nil
}

// Clear removes every report and returns how many were deleted.
func (r *SQLiteBatchRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM batch_reports`)
	if err != nil {
		return 0, fmt.Errorf("clearing batch reports: %w", err)
	}
	return res.RowsAffected()
}
