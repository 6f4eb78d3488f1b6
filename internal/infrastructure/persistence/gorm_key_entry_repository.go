package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormKeyEntryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormKeyEntryRepository creates a new GORM-based KeyEntryRepository implementation
func NewGormKeyEntryRepository(db *gorm.DB, logger logger.Logger) (keys.KeyEntryRepository, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &gormKeyEntryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormKeyEntryRepository) Create(ctx context.Context, entry *keys.KeyEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.KeyEntryModel{}
	model.FromDomain(entry)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create key entry: %w", err)
	}

	r.logger.Info("Created key entry with id ", entry.ID)
	return nil
}

func (r *gormKeyEntryRepository) List(ctx context.Context, query *keys.KeyEntryQuery) ([]*keys.KeyEntry, error) {
	if query == nil {
		query = keys.NewKeyEntryQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.KeyEntryModel
	dbQuery := r.db.WithContext(ctx).Model(&models.KeyEntryModel{})

	if query.Name != "" {
		dbQuery = dbQuery.Where("name = ?", query.Name)
	}
	if query.Department != "" {
		dbQuery = dbQuery.Where("department = ?", query.Department)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch key entries: %w", err)
	}

	entries := make([]*keys.KeyEntry, len(modelList))
	for i, model := range modelList {
		entries[i] = model.ToDomain()
	}

	return entries, nil
}

func (r *gormKeyEntryRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	var model models.KeyEntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", keys.ErrKeyEntryNotFound, keyID)
		}
		return nil, fmt.Errorf("failed to fetch key entry: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormKeyEntryRepository) DeleteByID(ctx context.Context, keyID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", keyID).Delete(&models.KeyEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", keys.ErrKeyEntryNotFound, keyID)
	}

	r.logger.Info("Deleted key entry with id ", keyID)
	return nil
}
