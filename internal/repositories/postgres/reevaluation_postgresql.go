package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type reevaluationRepository struct {
	db *gorm.DB
}

func NewReevaluationRepository(db *gorm.DB) repositories.ReevaluationRepository {
	return &reevaluationRepository{db: db}
}

func (r *reevaluationRepository) Create(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(reevaluation).Error; err != nil {
		return handleDBError(err, "create reevaluation")
	}
	return nil
}

func (r *reevaluationRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Reevaluation, error) {
	db := r.getDB(tx)
	var reevaluation models.Reevaluation
	if err := db.WithContext(ctx).
		Preload("Seance.Patient").
		Preload("Seance.Medecin.User").
		First(&reevaluation, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get reevaluation by id")
	}
	return &reevaluation, nil
}

func (r *reevaluationRepository) GetBySeance(ctx context.Context, tx *gorm.DB, seanceID string) (*models.Reevaluation, error) {
	db := r.getDB(tx)
	var reevaluation models.Reevaluation
	if err := db.WithContext(ctx).First(&reevaluation, "seance_id = ?", seanceID).Error; err != nil {
		return nil, handleDBError(err, "get reevaluation by seance")
	}
	return &reevaluation, nil
}

func (r *reevaluationRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Reevaluation, int64, error) {
	db := r.getDB(tx)
	var reevaluations []*models.Reevaluation
	var total int64

	query := db.WithContext(ctx).Model(&models.Reevaluation{}).
		Preload("Seance.Patient").
		Preload("Seance.Medecin.User")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count reevaluations")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&reevaluations).Error; err != nil {
		return nil, 0, handleDBError(err, "list reevaluations")
	}

	return reevaluations, total, nil
}

func (r *reevaluationRepository) Update(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(reevaluation).Error; err != nil {
		return handleDBError(err, "update reevaluation")
	}
	return nil
}

func (r *reevaluationRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Reevaluation{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete reevaluation")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete reevaluation")
	}
	return nil
}

func (r *reevaluationRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
