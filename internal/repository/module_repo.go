package repository

import (
	"context"
	"errors"

	"Folio/internal/model"

	"gorm.io/gorm"
)

type ModuleRepo interface {
	ListModules(ctx context.Context, enabledOnly bool) ([]*model.Module, error)
	GetModuleByID(ctx context.Context, id uint64) (*model.Module, error)
	GetModuleBySlug(ctx context.Context, slug string) (*model.Module, error)
	CreateModule(ctx context.Context, module *model.Module) error
	SaveModule(ctx context.Context, module *model.Module) error
	DeleteModule(ctx context.Context, id uint64) (int64, error)
	UpdateSortOrder(ctx context.Context, id uint64, sortOrder int) (int64, error)
	NextSortOrder(ctx context.Context) (int, error)
}

type moduleRepoImpl struct {
	db *gorm.DB
}

func NewModuleRepo(db *gorm.DB) ModuleRepo {
	return &moduleRepoImpl{db: db}
}

func (s *moduleRepoImpl) ListModules(ctx context.Context, enabledOnly bool) ([]*model.Module, error) {
	modules := make([]*model.Module, 0)
	tx := s.db.WithContext(ctx)
	if enabledOnly {
		tx = tx.Where("enabled = ?", true)
	}
	err := tx.Order("sort_order ASC").Order("id ASC").Find(&modules).Error
	return modules, err
}

func (s *moduleRepoImpl) GetModuleByID(ctx context.Context, id uint64) (*model.Module, error) {
	module := &model.Module{}
	err := s.db.WithContext(ctx).First(module, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return module, nil
}

func (s *moduleRepoImpl) GetModuleBySlug(ctx context.Context, slug string) (*model.Module, error) {
	module := &model.Module{}
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return module, nil
}

func (s *moduleRepoImpl) CreateModule(ctx context.Context, module *model.Module) error {
	return s.db.WithContext(ctx).Create(module).Error
}

func (s *moduleRepoImpl) SaveModule(ctx context.Context, module *model.Module) error {
	return s.db.WithContext(ctx).Save(module).Error
}

func (s *moduleRepoImpl) DeleteModule(ctx context.Context, id uint64) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&model.Module{}, id)
	return res.RowsAffected, res.Error
}

func (s *moduleRepoImpl) UpdateSortOrder(ctx context.Context, id uint64, sortOrder int) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Module{}).
		Where("id = ?", id).
		Update("sort_order", sortOrder)
	return res.RowsAffected, res.Error
}

func (s *moduleRepoImpl) NextSortOrder(ctx context.Context) (int, error) {
	var next int
	err := s.db.WithContext(ctx).Model(&model.Module{}).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error
	return next, err
}
