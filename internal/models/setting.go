package models

// Setting represents a row of the settings table.
type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
	AuditFields
}
