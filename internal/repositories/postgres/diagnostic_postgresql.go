package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type diagnosticRepository struct {
	db *gorm.DB
}

func NewDiagnosticRepository(db *gorm.DB) repositories.DiagnosticRepository {
	return &diagnosticRepository{db: db}
}

func (r *diagnosticRepository) Create(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(diagnostic).Error; err != nil {
		return handleDBError(err, "create diagnostic")
	}
	return nil
}

func (r *diagnosticRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Diagnostic, error) {
	db := r.getDB(tx)
	var diagnostic models.Diagnostic
	if err := db.WithContext(ctx).
		Preload("Medecin.User").
		First(&diagnostic, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get diagnostic by id")
	}
	return &diagnostic, nil
}

func (r *diagnosticRepository) GetByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) ([]*models.Diagnostic, error) {
	db := r.getDB(tx)
	var diagnostics []*models.Diagnostic
	if err := db.WithContext(ctx).
		Preload("Medecin.User").
		Where("consultation_id = ?", consultationID).
		Order("created_at ASC").
		Find(&diagnostics).Error; err != nil {
		return nil, handleDBError(err, "get diagnostics by consultation")
	}
	return diagnostics, nil
}

func (r *diagnosticRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Diagnostic, int64, error) {
	db := r.getDB(tx)
	var diagnostics []*models.Diagnostic
	var total int64

	query := db.WithContext(ctx).Model(&models.Diagnostic{}).Preload("Medecin.User")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count diagnostics")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&diagnostics).Error; err != nil {
		return nil, 0, handleDBError(err, "list diagnostics")
	}

	return diagnostics, total, nil
}

func (r *diagnosticRepository) Update(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(diagnostic).Error; err != nil {
		return handleDBError(err, "update diagnostic")
	}
	return nil
}

func (r *diagnosticRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Diagnostic{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete diagnostic")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete diagnostic")
	}
	return nil
}

func (r *diagnosticRepository) DeleteByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Delete(&models.Diagnostic{}).Error; err != nil {
		return handleDBError(err, "delete diagnostics by consultation")
	}
	return nil
}

func (r *diagnosticRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
