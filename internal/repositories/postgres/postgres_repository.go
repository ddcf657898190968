package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/cache"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user         repositories.UserRepository
	medecin      repositories.MedecinRepository
	etudiant     repositories.EtudiantRepository
	patient      repositories.PatientRepository
	action       repositories.ActionRepository
	consultation repositories.ConsultationRepository
	diagnostic   repositories.DiagnosticRepository
	seance       repositories.SeanceRepository
	reevaluation repositories.ReevaluationRepository
	notification repositories.NotificationRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository with all sub-repositories wired.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cache.NewCacheManager(config.RedisClient),
	}
	repo.initSubRepositories(config.DB)
	return repo
}

func (r *PostgreSQLRepository) initSubRepositories(db *gorm.DB) {
	r.user = NewUserRepository(db, r.cacheManager)
	r.medecin = NewMedecinRepository(db, r.cacheManager)
	r.etudiant = NewEtudiantRepository(db)
	r.patient = NewPatientRepository(db)
	r.action = NewActionRepository(db)
	r.consultation = NewConsultationRepository(db)
	r.diagnostic = NewDiagnosticRepository(db)
	r.seance = NewSeanceRepository(db)
	r.reevaluation = NewReevaluationRepository(db)
	r.notification = NewNotificationRepository(db)
}

func (r *PostgreSQLRepository) User() repositories.UserRepository { return r.user }

func (r *PostgreSQLRepository) Medecin() repositories.MedecinRepository { return r.medecin }

func (r *PostgreSQLRepository) Etudiant() repositories.EtudiantRepository { return r.etudiant }

func (r *PostgreSQLRepository) Patient() repositories.PatientRepository { return r.patient }

func (r *PostgreSQLRepository) Action() repositories.ActionRepository { return r.action }

func (r *PostgreSQLRepository) Consultation() repositories.ConsultationRepository {
	return r.consultation
}

func (r *PostgreSQLRepository) Diagnostic() repositories.DiagnosticRepository { return r.diagnostic }

func (r *PostgreSQLRepository) Seance() repositories.SeanceRepository { return r.seance }

func (r *PostgreSQLRepository) Reevaluation() repositories.ReevaluationRepository {
	return r.reevaluation
}

func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

// WithTransaction executes fn against a repository bound to one transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.initSubRepositories(tx)
		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize validates connections and wires the repository.
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}
