package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

// handleDBError maps gorm errors to the repository sentinel errors so that
// services never depend on driver details.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", operation, repositories.ErrDuplicate)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// isUniqueViolation catches unique-constraint errors the driver does not
// translate to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// applyPaginationAndSorting applies a whitelisted sort and pagination.
func applyPaginationAndSorting(query *gorm.DB, limit, offset int, sortBy, sortOrder string) *gorm.DB {
	// Map logical API sort keys to SQL-safe column names
	sortKeyToColumn := map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"date":       "date",
		"id":         "id",
	}

	column, ok := sortKeyToColumn[sortBy]
	if !ok {
		column = "created_at"
	}

	order := "DESC"
	if sortOrder == "asc" || sortOrder == "ASC" {
		order = "ASC"
	}

	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
