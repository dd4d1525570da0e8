package repository

import (
	"context"
	"errors"
	"time"

	"Folio/internal/model"
	"Folio/internal/pkg/consts"

	"gorm.io/gorm"
)

// MediaQuery 后台检索条件
type MediaQuery struct {
	Module         string
	Classification string
	Type           string
	Keyword        string
	Offset         int
	Limit          int
}

type MediaRepo interface {
	Transaction(ctx context.Context, fn func(repo MediaRepo) error) error
	CreateMedia(ctx context.Context, media *model.Media) error
	GetMediaByID(ctx context.Context, id string) (*model.Media, error)
	GetMediaByIDs(ctx context.Context, ids []string) ([]*model.Media, error)
	GetChildren(ctx context.Context, parentIDs []string) ([]*model.Media, error)
	GetFamily(ctx context.Context, ids []string) ([]*model.Media, error)
	ListPublic(ctx context.Context, module string) ([]*model.Media, error)
	ListPublicChildren(ctx context.Context, parentIDs []string) ([]*model.Media, error)
	ListByModule(ctx context.Context, module string) ([]*model.Media, error)
	QueryMedia(ctx context.Context, q MediaQuery) ([]*model.Media, int64, error)
	NextSortOrder(ctx context.Context, module string) (int, error)
	SaveMedia(ctx context.Context, media *model.Media) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) (int64, error)
	UpdateTags(ctx context.Context, id string, tags model.Tags) error
	SetTags(ctx context.Context, ids []string, tags model.Tags) (int64, error)
	UpdateClassification(ctx context.Context, ids []string, classification string, createdAt *time.Time) (int64, error)
	UpdateURL(ctx context.Context, id string, url string) error
	DeleteMedia(ctx context.Context, ids []string) (int64, error)
	FindInBatches(ctx context.Context, size int, fn func(batch []*model.Media) error) error
}

type mediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) MediaRepo {
	return &mediaRepoImpl{db: db}
}

// Transaction 在同一事务内执行 fn，fn 中的 repo 绑定到事务
func (s *mediaRepoImpl) Transaction(ctx context.Context, fn func(repo MediaRepo) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&mediaRepoImpl{db: tx})
	})
}

func (s *mediaRepoImpl) CreateMedia(ctx context.Context, media *model.Media) error {
	return s.db.WithContext(ctx).Create(media).Error
}

func (s *mediaRepoImpl) GetMediaByID(ctx context.Context, id string) (*model.Media, error) {
	media := &model.Media{}
	err := s.db.WithContext(ctx).Where("id = ?", id).First(media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return media, nil
}

func (s *mediaRepoImpl) GetMediaByIDs(ctx context.Context, ids []string) ([]*model.Media, error) {
	media := make([]*model.Media, 0, len(ids))
	if len(ids) == 0 {
		return media, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&media).Error
	return media, err
}

// GetChildren 父记录下挂载的子记录，仅一层
func (s *mediaRepoImpl) GetChildren(ctx context.Context, parentIDs []string) ([]*model.Media, error) {
	media := make([]*model.Media, 0)
	if len(parentIDs) == 0 {
		return media, nil
	}
	err := s.db.WithContext(ctx).Where("content_id IN ?", parentIDs).Find(&media).Error
	return media, err
}

// GetFamily 给定记录及其子记录
func (s *mediaRepoImpl) GetFamily(ctx context.Context, ids []string) ([]*model.Media, error) {
	media := make([]*model.Media, 0, len(ids))
	if len(ids) == 0 {
		return media, nil
	}
	err := s.db.WithContext(ctx).
		Where("id IN ? OR content_id IN ?", ids, ids).
		Find(&media).Error
	return media, err
}

// ListPublic 时间流使用的顶层非草稿记录，指定模块时按模块内排序
func (s *mediaRepoImpl) ListPublic(ctx context.Context, module string) ([]*model.Media, error) {
	media := make([]*model.Media, 0)
	tx := s.db.WithContext(ctx).
		Where("classification <> ?", consts.ClassificationDraft).
		Where("content_id IS NULL")
	if module != "" {
		tx = tx.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", module).
			Order("sort_order ASC").Order("created_at DESC")
	} else {
		tx = tx.Order("created_at DESC")
	}
	err := tx.Find(&media).Error
	return media, err
}

func (s *mediaRepoImpl) ListPublicChildren(ctx context.Context, parentIDs []string) ([]*model.Media, error) {
	media := make([]*model.Media, 0)
	if len(parentIDs) == 0 {
		return media, nil
	}
	err := s.db.WithContext(ctx).
		Where("content_id IN ?", parentIDs).
		Where("classification <> ?", consts.ClassificationDraft).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&media).Error
	return media, err
}

// ListByModule 模块内全部顶层记录，按当前排序
func (s *mediaRepoImpl) ListByModule(ctx context.Context, module string) ([]*model.Media, error) {
	media := make([]*model.Media, 0)
	err := s.db.WithContext(ctx).
		Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", module).
		Where("content_id IS NULL").
		Order("sort_order ASC").Order("created_at DESC").
		Find(&media).Error
	return media, err
}

func (s *mediaRepoImpl) QueryMedia(ctx context.Context, q MediaQuery) ([]*model.Media, int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.Media{})
	if q.Module != "" {
		tx = tx.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", q.Module)
	}
	if q.Classification != "" {
		tx = tx.Where("classification = ?", q.Classification)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.Keyword != "" {
		tx = tx.Where("content LIKE ?", "%"+q.Keyword+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	media := make([]*model.Media, 0)
	if q.Module != "" {
		tx = tx.Order("sort_order ASC")
	}
	err := tx.Order("created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&media).Error
	return media, total, err
}

// NextSortOrder 模块内下一个排序位置
func (s *mediaRepoImpl) NextSortOrder(ctx context.Context, module string) (int, error) {
	if module == "" {
		return 0, nil
	}
	var next int
	err := s.db.WithContext(ctx).Model(&model.Media{}).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", module).
		Scan(&next).Error
	return next, err
}

func (s *mediaRepoImpl) SaveMedia(ctx context.Context, media *model.Media) error {
	return s.db.WithContext(ctx).Save(media).Error
}

func (s *mediaRepoImpl) UpdateSortOrder(ctx context.Context, id string, sortOrder int) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Media{}).
		Where("id = ?", id).
		Update("sort_order", sortOrder)
	return res.RowsAffected, res.Error
}

func (s *mediaRepoImpl) UpdateTags(ctx context.Context, id string, tags model.Tags) error {
	return s.db.WithContext(ctx).Model(&model.Media{}).
		Where("id = ?", id).
		Update("tags", tags).Error
}

func (s *mediaRepoImpl) SetTags(ctx context.Context, ids []string, tags model.Tags) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&model.Media{}).
		Where("id IN ?", ids).
		Update("tags", tags)
	return res.RowsAffected, res.Error
}

// UpdateClassification createdAt 非空时一并刷新创建时间
func (s *mediaRepoImpl) UpdateClassification(ctx context.Context, ids []string, classification string, createdAt *time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	values := map[string]interface{}{"classification": classification}
	if createdAt != nil {
		values["created_at"] = *createdAt
	}
	res := s.db.WithContext(ctx).Model(&model.Media{}).
		Where("id IN ?", ids).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (s *mediaRepoImpl) UpdateURL(ctx context.Context, id string, url string) error {
	return s.db.WithContext(ctx).Model(&model.Media{}).
		Where("id = ?", id).
		Update("url", url).Error
}

func (s *mediaRepoImpl) DeleteMedia(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Media{})
	return res.RowsAffected, res.Error
}

func (s *mediaRepoImpl) FindInBatches(ctx context.Context, size int, fn func(batch []*model.Media) error) error {
	var batch []*model.Media
	return s.db.WithContext(ctx).
		FindInBatches(&batch, size, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
