package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) repositories.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(patient).Error; err != nil {
		return handleDBError(err, "create patient")
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Patient, error) {
	db := r.getDB(tx)
	var patient models.Patient
	if err := db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get patient by id")
	}
	return &patient, nil
}

func (r *patientRepository) GetByNumeroDeDossier(ctx context.Context, tx *gorm.DB, numero string) (*models.Patient, error) {
	db := r.getDB(tx)
	var patient models.Patient
	if err := db.WithContext(ctx).First(&patient, "numero_de_dossier = ?", numero).Error; err != nil {
		return nil, handleDBError(err, "get patient by numero de dossier")
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.PatientFilters) ([]*models.Patient, int64, error) {
	db := r.getDB(tx)
	var patients []*models.Patient
	var total int64

	query := db.WithContext(ctx).Model(&models.Patient{})
	if filters.State != nil {
		query = query.Where("state = ?", *filters.State)
	}
	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("nom ILIKE ? OR prenom ILIKE ? OR numero_de_dossier ILIKE ?", search, search, search)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count patients")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&patients).Error; err != nil {
		return nil, 0, handleDBError(err, "list patients")
	}

	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(patient).Error; err != nil {
		return handleDBError(err, "update patient")
	}
	return nil
}

func (r *patientRepository) UpdateState(ctx context.Context, tx *gorm.DB, id string, state models.Profession) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", id).
		Update("state", state)
	if result.Error != nil {
		return handleDBError(result.Error, "update patient state")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update patient state")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete patient")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete patient")
	}
	return nil
}

func (r *patientRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
