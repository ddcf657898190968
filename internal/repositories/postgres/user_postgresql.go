package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/cache"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type userRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserRepository(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &userRepository{db: db, cacheManager: cacheManager}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	// Cache only outside transactions, a tx read must see its own writes
	if tx == nil && r.cacheManager != nil {
		var cached models.User
		if err := r.cacheManager.User.Get(ctx, "id:"+id, &cached); err == nil {
			return &cached, nil
		}
	}

	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}

	if tx == nil && r.cacheManager != nil {
		_ = r.cacheManager.User.Set(ctx, "id:"+id, &user, cache.UserCacheConfig.TTL)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, handleDBError(err, "get user by username")
	}
	return &user, nil
}

func (r *userRepository) GetByRole(ctx context.Context, tx *gorm.DB, role models.Role) ([]*models.User, error) {
	db := r.getDB(tx)
	var users []*models.User
	if err := db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, handleDBError(err, "get users by role")
	}
	return users, nil
}

func (r *userRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	db := r.getDB(tx)
	var users []*models.User
	var total int64

	query := db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR username ILIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = applyPaginationAndSorting(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	r.invalidate(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete user")
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) invalidate(ctx context.Context, id string) {
	if r.cacheManager != nil {
		_ = r.cacheManager.User.Delete(ctx, "id:"+id)
	}
}

func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
