package services

import (
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider.
// cache and notifier may be nil / no-op when Redis is not configured.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cache portsrepo.Cache, notifier portssvc.Notifier, tokenCfg TokenConfig) *portssvc.ServiceContainer {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}

	audit := NewAuditService(repos.AuditRepo, repos.UserRepo)
	settings := NewSettingService(repos.SettingRepo, repos.UserRepo, audit)
	ranking := NewRankingService(repos.ScoreRepo, repos.WorkerRepo, repos.UserRepo, settings, audit, notifier, cache)

	return &portssvc.ServiceContainer{
		User:      NewUserService(repos.UserRepo, repos.WorkerRepo, audit),
		Token:     NewTokenService(tokenCfg, repos.UserRepo),
		Shift:     NewShiftService(repos.ShiftRepo, repos.WorkerRepo, repos.UserRepo, settings, audit, notifier),
		Score:     NewScoreService(repos.ScoreRepo, repos.WorkerRepo, repos.UserRepo, settings, ranking, audit),
		Ranking:   ranking,
		Setting:   settings,
		Audit:     audit,
		Reporting: NewReportingService(repos.ReportingRepo, repos.UserRepo, cache),
	}
}
