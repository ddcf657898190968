package repositories

import "context"

// Repository aggregates every entity repository behind one handle.
type Repository interface {
	User() UserRepository
	Medecin() MedecinRepository
	Etudiant() EtudiantRepository
	Patient() PatientRepository
	Action() ActionRepository
	Consultation() ConsultationRepository
	Diagnostic() DiagnosticRepository
	Seance() SeanceRepository
	Reevaluation() ReevaluationRepository
	Notification() NotificationRepository

	// WithTransaction runs fn against a repository bound to one database
	// transaction; any error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
