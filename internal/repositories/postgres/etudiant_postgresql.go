package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type etudiantRepository struct {
	db *gorm.DB
}

func NewEtudiantRepository(db *gorm.DB) repositories.EtudiantRepository {
	return &etudiantRepository{db: db}
}

func (r *etudiantRepository) Create(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(etudiant).Error; err != nil {
		return handleDBError(err, "create etudiant")
	}
	return nil
}

func (r *etudiantRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Etudiant, error) {
	db := r.getDB(tx)
	var etudiant models.Etudiant
	if err := db.WithContext(ctx).
		Preload("User").
		First(&etudiant, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get etudiant by id")
	}
	return &etudiant, nil
}

func (r *etudiantRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Etudiant, error) {
	db := r.getDB(tx)
	var etudiant models.Etudiant
	if err := db.WithContext(ctx).
		Preload("User").
		First(&etudiant, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get etudiant by user id")
	}
	return &etudiant, nil
}

func (r *etudiantRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Etudiant, int64, error) {
	db := r.getDB(tx)
	var etudiants []*models.Etudiant
	var total int64

	query := db.WithContext(ctx).Model(&models.Etudiant{}).Preload("User")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count etudiants")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&etudiants).Error; err != nil {
		return nil, 0, handleDBError(err, "list etudiants")
	}

	return etudiants, total, nil
}

func (r *etudiantRepository) Update(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(etudiant).Error; err != nil {
		return handleDBError(err, "update etudiant")
	}
	return nil
}

func (r *etudiantRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Etudiant{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete etudiant")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete etudiant")
	}
	return nil
}

func (r *etudiantRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
