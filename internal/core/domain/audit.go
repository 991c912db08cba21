package domain

import "time"

// AuditLog is one append-only record of a mutating action. Entries are never
// updated or deleted.
type AuditLog struct {
	LogID     string    `json:"logID"` // Primary Key (UUID)
	ActorID   string    `json:"actorID"`
	Action    string    `json:"action"`
	TableName string    `json:"tableName,omitempty"`
	RecordID  string    `json:"recordID,omitempty"`
	Details   []byte    `json:"details,omitempty"` // JSON payload
	OriginIP  string    `json:"originIP,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
