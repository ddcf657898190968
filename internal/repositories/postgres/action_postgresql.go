package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type actionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) repositories.ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) Create(ctx context.Context, tx *gorm.DB, action *models.Action) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(action).Error; err != nil {
		return handleDBError(err, "create action")
	}
	return nil
}

func (r *actionRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Action, error) {
	db := r.getDB(tx)
	var action models.Action
	if err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin.User").
		First(&action, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get action by id")
	}
	return &action, nil
}

func (r *actionRepository) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Action, error) {
	db := r.getDB(tx)
	var actions []*models.Action
	if err := db.WithContext(ctx).
		Preload("Medecin.User").
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&actions).Error; err != nil {
		return nil, handleDBError(err, "get actions by patient")
	}
	return actions, nil
}

func (r *actionRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Action, int64, error) {
	db := r.getDB(tx)
	var actions []*models.Action
	var total int64

	query := db.WithContext(ctx).Model(&models.Action{}).
		Preload("Patient").
		Preload("Medecin.User")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count actions")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&actions).Error; err != nil {
		return nil, 0, handleDBError(err, "list actions")
	}

	return actions, total, nil
}

func (r *actionRepository) Update(ctx context.Context, tx *gorm.DB, action *models.Action) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(action).Error; err != nil {
		return handleDBError(err, "update action")
	}
	return nil
}

func (r *actionRepository) SetValidity(ctx context.Context, tx *gorm.DB, id string, isValid bool) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Action{}).
		Where("id = ?", id).
		Update("is_valid", isValid)
	if result.Error != nil {
		return handleDBError(result.Error, "set action validity")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "set action validity")
	}
	return nil
}

func (r *actionRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Action{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete action")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete action")
	}
	return nil
}

func (r *actionRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
