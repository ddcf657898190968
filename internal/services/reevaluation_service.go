package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/storage"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

const (
	sondagePhotoPrefix = "sondage/"
	photoURLExpiry     = 15 * time.Minute
)

type reevaluationService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	store         storage.ObjectStore
	maxUploadSize int64
}

func NewReevaluationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, store storage.ObjectStore, maxUploadSize int64) ReevaluationService {
	return &reevaluationService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     validator,
		store:         store,
		maxUploadSize: maxUploadSize,
	}
}

// Create opens a REEVALUATION seance and its indices row in one transaction.
// The photo is stored before the transaction so a storage failure aborts the
// whole operation.
func (s *reevaluationService) Create(ctx context.Context, req *validator.ReevaluationCreateRequest, photo *PhotoUpload) (*models.Reevaluation, error) {
	s.logger.Info("Creating reevaluation", "patient_id", req.PatientID, "medecin_id", req.MedecinID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	medecin, err := s.repo.Medecin().GetByID(ctx, nil, req.MedecinID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}
	if err := checkSeanceProfession(models.SeanceReevaluation, medecin.Profession); err != nil {
		return nil, err
	}
	if _, err := s.repo.Patient().GetByID(ctx, nil, req.PatientID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	var photoKey *string
	if photo != nil {
		key, err := s.storePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		photoKey = &key
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	seance := &models.Seance{
		Type:      models.SeanceReevaluation,
		Date:      date,
		PatientID: req.PatientID,
		MedecinID: req.MedecinID,
	}
	reevaluation := &models.Reevaluation{
		IndiceDePlaque:  req.IndiceDePlaque,
		IndiceGingivale: req.IndiceGingivale,
		SondagePhoto:    photoKey,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Seance().Create(ctx, nil, seance); err != nil {
			return fmt.Errorf("failed to create seance: %w", err)
		}
		reevaluation.SeanceID = seance.ID
		if err := txRepo.Reevaluation().Create(ctx, nil, reevaluation); err != nil {
			return fmt.Errorf("failed to create reevaluation: %w", err)
		}
		return nil
	})
	if err != nil {
		// The orphaned photo is cleaned up so storage does not leak.
		if photoKey != nil {
			s.deletePhoto(ctx, *photoKey)
		}
		return nil, err
	}

	reevaluation.Seance = seance

	s.logger.Info("Reevaluation created", "reevaluation_id", reevaluation.ID, "seance_id", seance.ID)
	return reevaluation, nil
}

func (s *reevaluationService) GetByID(ctx context.Context, id string) (*models.Reevaluation, error) {
	reevaluation, err := s.repo.Reevaluation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReevaluationNotFound
		}
		return nil, fmt.Errorf("failed to get reevaluation: %w", err)
	}
	return reevaluation, nil
}

func (s *reevaluationService) GetBySeance(ctx context.Context, seanceID string) (*models.Reevaluation, error) {
	reevaluation, err := s.repo.Reevaluation().GetBySeance(ctx, nil, seanceID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReevaluationNotFound
		}
		return nil, fmt.Errorf("failed to get reevaluation for seance: %w", err)
	}
	return reevaluation, nil
}

func (s *reevaluationService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Reevaluation, int64, error) {
	reevaluations, total, err := s.repo.Reevaluation().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reevaluations: %w", err)
	}
	return reevaluations, total, nil
}

// Update replaces the indices and, when a new photo is uploaded, swaps the
// stored object. The old photo is removed best-effort.
func (s *reevaluationService) Update(ctx context.Context, id string, req *validator.ReevaluationUpdateRequest, photo *PhotoUpload) (*models.Reevaluation, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	reevaluation, err := s.repo.Reevaluation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReevaluationNotFound
		}
		return nil, fmt.Errorf("failed to get reevaluation: %w", err)
	}

	if req.IndiceDePlaque != nil {
		reevaluation.IndiceDePlaque = *req.IndiceDePlaque
	}
	if req.IndiceGingivale != nil {
		reevaluation.IndiceGingivale = *req.IndiceGingivale
	}

	var oldKey *string
	if photo != nil {
		key, err := s.storePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		oldKey = reevaluation.SondagePhoto
		reevaluation.SondagePhoto = &key
	}

	if err := s.repo.Reevaluation().Update(ctx, nil, reevaluation); err != nil {
		if reevaluation.SondagePhoto != nil && photo != nil {
			s.deletePhoto(ctx, *reevaluation.SondagePhoto)
		}
		return nil, fmt.Errorf("failed to update reevaluation: %w", err)
	}

	if oldKey != nil {
		s.deletePhoto(ctx, *oldKey)
	}

	s.logger.Info("Reevaluation updated", "reevaluation_id", reevaluation.ID)
	return reevaluation, nil
}

func (s *reevaluationService) Delete(ctx context.Context, id string) error {
	reevaluation, err := s.repo.Reevaluation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReevaluationNotFound
		}
		return fmt.Errorf("failed to get reevaluation: %w", err)
	}

	if reevaluation.SondagePhoto != nil {
		s.deletePhoto(ctx, *reevaluation.SondagePhoto)
	}

	if err := s.repo.Reevaluation().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete reevaluation: %w", err)
	}

	s.logger.Info("Reevaluation deleted", "reevaluation_id", id)
	return nil
}

func (s *reevaluationService) PhotoURL(ctx context.Context, id string) (string, error) {
	reevaluation, err := s.repo.Reevaluation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrReevaluationNotFound
		}
		return "", fmt.Errorf("failed to get reevaluation: %w", err)
	}
	if reevaluation.SondagePhoto == nil {
		return "", storage.ErrObjectNotFound
	}
	return s.store.URL(ctx, *reevaluation.SondagePhoto, photoURLExpiry)
}

// storePhoto validates and uploads a probing chart photo, returning its
// object key.
func (s *reevaluationService) storePhoto(ctx context.Context, photo *PhotoUpload) (string, error) {
	ext, err := photoExtension(photo.ContentType, photo.Filename)
	if err != nil {
		return "", err
	}
	if photo.Size > s.maxUploadSize {
		return "", ErrPhotoTooLarge
	}

	key := sondagePhotoPrefix + uuid.NewString() + ext
	if err := s.store.Put(ctx, key, photo.Reader, photo.Size, photo.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *reevaluationService) deletePhoto(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete probing chart photo", "key", key, "error", err)
	}
}

func photoExtension(contentType, filename string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	}

	// Some clients omit the part content type, fall back to the filename.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return ".jpg", nil
	case ".png":
		return ".png", nil
	}
	return "", ErrInvalidPhotoType
}
