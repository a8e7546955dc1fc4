package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storefront-labs/oms/internal/service/models/auditrecord"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresAuditRepository is the append-only audit record repository. Inserts
// run in the same transaction as the mutation they describe; rows are never
// updated or deleted.
type PostgresAuditRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresAuditRepository creates a new Postgres audit repository.
func NewPostgresAuditRepository(conn GenericConn) *PostgresAuditRepository {
	return &PostgresAuditRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert appends one audit record and returns it with the assigned id.
func (r *PostgresAuditRepository) Insert(
	ctx context.Context,
	record auditrecord.AuditRecord,
) (auditrecord.AuditRecord, error) {
	query, args, err := r.sb.
		Insert("audit_records").
		Columns("table_name", "action", "record_id", "actor_id", "old_value", "new_value", "created_at").
		Values(
			record.TableName,
			record.Action.String(),
			record.RecordID,
			record.ActorID,
			record.OldValue,
			record.NewValue,
			record.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return auditrecord.AuditRecord{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&record.ID); err != nil {
		return auditrecord.AuditRecord{}, fmt.Errorf("failed to insert audit record: %w", err)
	}

	return record, nil
}
