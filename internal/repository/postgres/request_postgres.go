package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"barangay/internal/model"
	"barangay/internal/repository"
)

const requestTable = "document_requests"

var requestColumns = []string{
	"id",
	"resident_id",
	"type",
	"status",
	"purpose",
	"request_date",
	"processed_date",
	"completed_date",
	"processed_by",
	"payment_status",
	"payment_amount",
	"payment_method",
	"payment_reference",
	"payment_proof",
	"payment_reviewed_by",
	"payment_reviewed_date",
	"reference_number",
	"notes",
	"document_url",
}

// Columns fixed at creation and never rewritten by an upsert.
var immutableColumns = map[string]bool{
	"id":               true,
	"resident_id":      true,
	"type":             true,
	"purpose":          true,
	"request_date":     true,
	"payment_amount":   true,
	"reference_number": true,
}

var upsertSuffix = buildUpsertSuffix()

func buildUpsertSuffix() string {
	sets := make([]string, 0, len(requestColumns))
	for _, c := range requestColumns {
		if !immutableColumns[c] {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// RequestPostgres is the PostgreSQL implementation of repository.RequestRepository.
type RequestPostgres struct {
	db *sql.DB
}

func NewRequestPostgres(db *sql.DB) *RequestPostgres {
	return &RequestPostgres{db: db}
}

var _ repository.RequestRepository = (*RequestPostgres)(nil)

func (r *RequestPostgres) Save(ctx context.Context, req *model.DocumentRequest) error {
	query, args, err := psql().
		Insert(requestTable).
		Columns(requestColumns...).
		Values(
			req.ID,
			req.ResidentID,
			string(req.Type),
			string(req.Status),
			req.Purpose,
			req.RequestDate,
			req.ProcessedDate,
			req.CompletedDate,
			req.ProcessedBy,
			string(req.PaymentStatus),
			req.PaymentAmount,
			string(req.PaymentMethod),
			req.PaymentReference,
			req.PaymentProof,
			req.PaymentReviewedBy,
			req.PaymentReviewedDate,
			req.ReferenceNumber,
			req.Notes,
			req.DocumentURL,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save request %s: %w", req.ID, err)
	}
	return nil
}

func (r *RequestPostgres) Delete(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(requestTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}
	return nil
}

func (r *RequestPostgres) List(ctx context.Context) ([]model.DocumentRequest, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTable).
		OrderBy("request_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	items := make([]model.DocumentRequest, 0)
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return items, nil
}
