package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) repositories.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(consultation).Error; err != nil {
		return handleDBError(err, "create consultation")
	}
	return nil
}

func (r *consultationRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Consultation, error) {
	db := r.getDB(tx)
	var consultation models.Consultation
	if err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin.User").
		Preload("Diagnostics.Medecin.User").
		First(&consultation, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get consultation by id")
	}
	return &consultation, nil
}

func (r *consultationRepository) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) (*models.Consultation, error) {
	db := r.getDB(tx)
	var consultation models.Consultation
	if err := db.WithContext(ctx).
		Preload("Diagnostics.Medecin.User").
		First(&consultation, "patient_id = ?", patientID).Error; err != nil {
		return nil, handleDBError(err, "get consultation by patient")
	}
	return &consultation, nil
}

func (r *consultationRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Consultation, int64, error) {
	db := r.getDB(tx)
	var consultations []*models.Consultation
	var total int64

	query := db.WithContext(ctx).Model(&models.Consultation{}).
		Preload("Patient").
		Preload("Medecin.User").
		Preload("Diagnostics")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count consultations")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&consultations).Error; err != nil {
		return nil, 0, handleDBError(err, "list consultations")
	}

	return consultations, total, nil
}

func (r *consultationRepository) Update(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(consultation).Error; err != nil {
		return handleDBError(err, "update consultation")
	}
	return nil
}

func (r *consultationRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Consultation{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete consultation")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete consultation")
	}
	return nil
}

func (r *consultationRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
