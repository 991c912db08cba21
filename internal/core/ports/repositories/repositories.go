package repositories

// RepositoryProvider holds instances of all repositories and is handed to the
// service container at startup.
type RepositoryProvider struct {
	UserRepo      UserRepository
	WorkerRepo    WorkerRepository
	ShiftRepo     ShiftRepositoryWithTx
	ScoreRepo     ScoreRepositoryFacade
	SettingRepo   SettingRepository
	AuditRepo     AuditLogRepository
	ReportingRepo ReportingRepository
}
