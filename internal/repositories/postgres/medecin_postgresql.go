package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/cache"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type medecinRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewMedecinRepository(db *gorm.DB, cacheManager *cache.CacheManager) repositories.MedecinRepository {
	return &medecinRepository{db: db, cacheManager: cacheManager}
}

func (r *medecinRepository) Create(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(medecin).Error; err != nil {
		return handleDBError(err, "create medecin")
	}
	r.invalidateProfession(ctx, medecin.Profession)
	return nil
}

func (r *medecinRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Medecin, error) {
	db := r.getDB(tx)
	var medecin models.Medecin
	if err := db.WithContext(ctx).
		Preload("User").
		First(&medecin, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get medecin by id")
	}
	return &medecin, nil
}

func (r *medecinRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Medecin, error) {
	db := r.getDB(tx)
	var medecin models.Medecin
	if err := db.WithContext(ctx).
		Preload("User").
		First(&medecin, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get medecin by user id")
	}
	return &medecin, nil
}

func (r *medecinRepository) GetByProfession(ctx context.Context, tx *gorm.DB, profession models.Profession) ([]*models.Medecin, error) {
	// Transfer notifications fan out to every doctor of the target
	// profession, so this list is read on the hot path and cached.
	cacheKey := "profession:" + string(profession)
	if tx == nil && r.cacheManager != nil {
		var cached []*models.Medecin
		if err := r.cacheManager.Medecin.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	db := r.getDB(tx)
	var medecins []*models.Medecin
	if err := db.WithContext(ctx).
		Preload("User").
		Where("profession = ?", profession).
		Find(&medecins).Error; err != nil {
		return nil, handleDBError(err, "get medecins by profession")
	}

	if tx == nil && r.cacheManager != nil {
		_ = r.cacheManager.Medecin.Set(ctx, cacheKey, medecins, cache.MedecinCacheConfig.TTL)
	}

	return medecins, nil
}

func (r *medecinRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.MedecinFilters) ([]*models.Medecin, int64, error) {
	db := r.getDB(tx)
	var medecins []*models.Medecin
	var total int64

	query := db.WithContext(ctx).Model(&models.Medecin{}).Preload("User")
	if filters.Profession != nil {
		query = query.Where("profession = ?", *filters.Profession)
	}
	if filters.IsSpecialiste != nil {
		query = query.Where("is_specialiste = ?", *filters.IsSpecialiste)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count medecins")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&medecins).Error; err != nil {
		return nil, 0, handleDBError(err, "list medecins")
	}

	return medecins, total, nil
}

func (r *medecinRepository) Update(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(medecin).Error; err != nil {
		return handleDBError(err, "update medecin")
	}
	r.invalidateProfession(ctx, models.ProfessionParodontaire)
	r.invalidateProfession(ctx, models.ProfessionOrthodontaire)
	return nil
}

func (r *medecinRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Medecin{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete medecin")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete medecin")
	}
	r.invalidateProfession(ctx, models.ProfessionParodontaire)
	r.invalidateProfession(ctx, models.ProfessionOrthodontaire)
	return nil
}

func (r *medecinRepository) invalidateProfession(ctx context.Context, profession models.Profession) {
	if r.cacheManager != nil {
		_ = r.cacheManager.Medecin.Delete(ctx, "profession:"+string(profession))
	}
}

func (r *medecinRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
