package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/models"
)

type PgxSettingRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{db: db}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

func toDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		Key:   m.Key,
		Value: m.Value,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT key, value, created_at, created_by, last_updated_at, last_updated_by FROM settings WHERE key = $1;`

	var m models.Setting
	err := r.db.QueryRow(ctx, query, key).Scan(
		&m.Key, &m.Value, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}

	setting := toDomainSetting(m)
	return &setting, nil
}

func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	query := `SELECT key, value, created_at, created_by, last_updated_at, last_updated_by FROM settings ORDER BY key ASC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var m models.Setting
		if err := rows.Scan(&m.Key, &m.Value, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings = append(settings, toDomainSetting(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate setting rows: %w", err)
	}
	return settings, nil
}

func (r *PgxSettingRepository) SaveSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO settings (key, value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		setting.Key,
		setting.Value,
		setting.CreatedAt,
		setting.CreatedBy,
		setting.LastUpdatedAt,
		setting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", setting.Key, err)
	}
	return nil
}
