package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/models"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditRepository)(nil)

func toModelAuditLog(d domain.AuditLog) models.AuditLog {
	m := models.AuditLog{
		LogID:     d.LogID,
		ActorID:   d.ActorID,
		Action:    d.Action,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
	}
	if d.TableName != "" {
		m.TableName = &d.TableName
	}
	if d.RecordID != "" {
		m.RecordID = &d.RecordID
	}
	if d.OriginIP != "" {
		m.OriginIP = &d.OriginIP
	}
	return m
}

func toDomainAuditLog(m models.AuditLog) domain.AuditLog {
	d := domain.AuditLog{
		LogID:     m.LogID,
		ActorID:   m.ActorID,
		Action:    m.Action,
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
	if m.TableName != nil {
		d.TableName = *m.TableName
	}
	if m.RecordID != nil {
		d.RecordID = *m.RecordID
	}
	if m.OriginIP != nil {
		d.OriginIP = *m.OriginIP
	}
	return d
}

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := toModelAuditLog(entry)
	query := `
		INSERT INTO audit_logs (log_id, actor_id, action, table_name, record_id, details, origin_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		m.LogID,
		m.ActorID,
		m.Action,
		m.TableName,
		m.RecordID,
		m.Details,
		m.OriginIP,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, limit, offset int) ([]domain.AuditLog, int64, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ActorID != "" {
		conditions = append(conditions, "actor_id = "+arg(filter.ActorID))
	}
	if filter.Action != "" {
		conditions = append(conditions, "action ILIKE '%' || "+arg(filter.Action)+" || '%'")
	}
	if filter.TableName != "" {
		conditions = append(conditions, "table_name = "+arg(filter.TableName))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := "SELECT log_id, actor_id, action, table_name, record_id, details, origin_ip, created_at FROM audit_logs" +
		where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %s OFFSET %s", arg(limit), arg(offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(
			&m.LogID,
			&m.ActorID,
			&m.Action,
			&m.TableName,
			&m.RecordID,
			&m.Details,
			&m.OriginIP,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		logs = append(logs, toDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit log rows: %w", err)
	}
	return logs, total, nil
}
