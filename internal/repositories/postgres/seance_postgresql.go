package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type seanceRepository struct {
	db *gorm.DB
}

func NewSeanceRepository(db *gorm.DB) repositories.SeanceRepository {
	return &seanceRepository{db: db}
}

func (r *seanceRepository) Create(ctx context.Context, tx *gorm.DB, seance *models.Seance) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(seance).Error; err != nil {
		return handleDBError(err, "create seance")
	}
	return nil
}

func (r *seanceRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Seance, error) {
	db := r.getDB(tx)
	var seance models.Seance
	if err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin.User").
		First(&seance, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get seance by id")
	}
	return &seance, nil
}

func (r *seanceRepository) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Seance, error) {
	db := r.getDB(tx)
	var seances []*models.Seance
	if err := db.WithContext(ctx).
		Preload("Medecin.User").
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&seances).Error; err != nil {
		return nil, handleDBError(err, "get seances by patient")
	}
	return seances, nil
}

func (r *seanceRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.SeanceFilters) ([]*models.Seance, int64, error) {
	db := r.getDB(tx)
	var seances []*models.Seance
	var total int64

	query := db.WithContext(ctx).Model(&models.Seance{}).
		Preload("Patient").
		Preload("Medecin.User")

	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.PatientID != nil {
		query = query.Where("patient_id = ?", *filters.PatientID)
	}
	if filters.MedecinID != nil {
		query = query.Where("medecin_id = ?", *filters.MedecinID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count seances")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&seances).Error; err != nil {
		return nil, 0, handleDBError(err, "list seances")
	}

	return seances, total, nil
}

func (r *seanceRepository) Update(ctx context.Context, tx *gorm.DB, seance *models.Seance) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(seance).Error; err != nil {
		return handleDBError(err, "update seance")
	}
	return nil
}

func (r *seanceRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Seance{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete seance")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete seance")
	}
	return nil
}

func (r *seanceRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
