package models

import "time"

// AuditLog represents a row of the audit_logs table. Append-only.
type AuditLog struct {
	LogID     string    `db:"log_id"`
	ActorID   string    `db:"actor_id"`
	Action    string    `db:"action"`
	TableName *string   `db:"table_name"`
	RecordID  *string   `db:"record_id"`
	Details   []byte    `db:"details"`
	OriginIP  *string   `db:"origin_ip"`
	CreatedAt time.Time `db:"created_at"`
}
