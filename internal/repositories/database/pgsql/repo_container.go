package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		WorkerRepo:    newPgxWorkerRepository(dbPool),
		ShiftRepo:     newPgxShiftRepository(dbPool),
		ScoreRepo:     newPgxScoreRepository(dbPool),
		SettingRepo:   newPgxSettingRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
