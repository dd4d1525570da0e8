package repository

import (
	"context"
	"errors"
	"time"

	"Folio/internal/model"

	"gorm.io/gorm"
)

// ContentRepo 文章、项目、博客共用的仓储，T 为具体模型
type ContentRepo[T any] interface {
	Transaction(ctx context.Context, fn func(repo ContentRepo[T]) error) error
	Create(ctx context.Context, item *T) error
	Save(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id uint64) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*T, error)
	List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*T, int64, error)
	ListPublished(ctx context.Context) ([]*T, error)
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)
	UpdateTags(ctx context.Context, id uint64, tags model.Tags) error
	SetPublished(ctx context.Context, ids []uint64, published bool, at time.Time) (int64, error)
	Delete(ctx context.Context, ids []uint64) (int64, error)
	FindInBatches(ctx context.Context, size int, fn func(batch []*T) error) error
}

type contentRepoImpl[T any] struct {
	db *gorm.DB
}

func NewContentRepo[T any](db *gorm.DB) ContentRepo[T] {
	return &contentRepoImpl[T]{db: db}
}

func NewArticleRepo(db *gorm.DB) ContentRepo[model.Article] {
	return NewContentRepo[model.Article](db)
}

func NewProjectRepo(db *gorm.DB) ContentRepo[model.Project] {
	return NewContentRepo[model.Project](db)
}

func NewPostRepo(db *gorm.DB) ContentRepo[model.Post] {
	return NewContentRepo[model.Post](db)
}

func (s *contentRepoImpl[T]) Transaction(ctx context.Context, fn func(repo ContentRepo[T]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&contentRepoImpl[T]{db: tx})
	})
}

func (s *contentRepoImpl[T]) Create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *contentRepoImpl[T]) Save(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *contentRepoImpl[T]) GetByID(ctx context.Context, id uint64) (*T, error) {
	item := new(T)
	err := s.db.WithContext(ctx).First(item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (s *contentRepoImpl[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	item := new(T)
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (s *contentRepoImpl[T]) GetByIDs(ctx context.Context, ids []uint64) ([]*T, error) {
	items := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (s *contentRepoImpl[T]) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*T, int64, error) {
	tx := s.db.WithContext(ctx).Model(new(T))
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*T, 0)
	err := tx.Order("COALESCE(published_at, created_at) DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (s *contentRepoImpl[T]) ListPublished(ctx context.Context) ([]*T, error) {
	items := make([]*T, 0)
	err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Find(&items).Error
	return items, err
}

func (s *contentRepoImpl[T]) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).Model(new(T)).Where("slug = ?", slug)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *contentRepoImpl[T]) UpdateTags(ctx context.Context, id uint64, tags model.Tags) error {
	return s.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Update("tags", tags).Error
}

// SetPublished 发布时刷新发布时间，撤回时保留原值
func (s *contentRepoImpl[T]) SetPublished(ctx context.Context, ids []uint64, published bool, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	values := map[string]interface{}{"published": published}
	if published {
		values["published_at"] = at
	}
	res := s.db.WithContext(ctx).Model(new(T)).
		Where("id IN ?", ids).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (s *contentRepoImpl[T]) Delete(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (s *contentRepoImpl[T]) FindInBatches(ctx context.Context, size int, fn func(batch []*T) error) error {
	var batch []*T
	return s.db.WithContext(ctx).
		FindInBatches(&batch, size, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
