package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"
)

// ContentService 文章、项目、博客共用
type ContentService interface {
	Kind() string
	ListContents(ctx context.Context, publishedOnly bool, page *dto.PageDTO) (*dto.PageResult[*dto.ContentDTO], error)
	GetContent(ctx context.Context, slug string, publishedOnly bool) (*dto.ContentDTO, error)
	CreateContent(ctx context.Context, in *dto.SaveContentDTO) (*dto.ContentDTO, error)
	UpdateContent(ctx context.Context, id uint64, in *dto.SaveContentDTO) (*dto.ContentDTO, error)
	DeleteContent(ctx context.Context, id uint64) error
	Batch(ctx context.Context, in *dto.BatchDTO) (*dto.BatchResult, error)
}

// contentModel 约束 T 的指针类型能取到公共字段
type contentModel[T any] interface {
	*T
	Base() *model.ContentBase
}

type contentServiceImpl[T any, PT contentModel[T]] struct {
	kind            string
	repo            repository.ContentRepo[T]
	activityService ActivityService
}

func newContentService[T any, PT contentModel[T]](kind string, repo repository.ContentRepo[T], activityService ActivityService) ContentService {
	return &contentServiceImpl[T, PT]{
		kind:            kind,
		repo:            repo,
		activityService: activityService,
	}
}

func NewArticleService(repo repository.ContentRepo[model.Article], activityService ActivityService) ContentService {
	return newContentService[model.Article](consts.ContentKindArticles, repo, activityService)
}

func NewProjectService(repo repository.ContentRepo[model.Project], activityService ActivityService) ContentService {
	return newContentService[model.Project](consts.ContentKindProjects, repo, activityService)
}

func NewPostService(repo repository.ContentRepo[model.Post], activityService ActivityService) ContentService {
	return newContentService[model.Post](consts.ContentKindPosts, repo, activityService)
}

func (s *contentServiceImpl[T, PT]) Kind() string {
	return s.kind
}

func (s *contentServiceImpl[T, PT]) ListContents(ctx context.Context, publishedOnly bool, page *dto.PageDTO) (*dto.PageResult[*dto.ContentDTO], error) {
	page.Normalize()
	items, total, err := s.repo.List(ctx, publishedOnly, page.Offset(), page.PageSize)
	if err != nil {
		return nil, err
	}
	result := &dto.PageResult[*dto.ContentDTO]{Total: total, List: make([]*dto.ContentDTO, 0, len(items))}
	for _, item := range items {
		c := toContentDTO(PT(item))
		c.Body = ""
		result.List = append(result.List, c)
	}
	return result, nil
}

func (s *contentServiceImpl[T, PT]) GetContent(ctx context.Context, slug string, publishedOnly bool) (*dto.ContentDTO, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if item == nil || (publishedOnly && !PT(item).Base().Published) {
		return nil, ErrContentNotFound
	}
	return toContentDTO(PT(item)), nil
}

func (s *contentServiceImpl[T, PT]) CreateContent(ctx context.Context, in *dto.SaveContentDTO) (*dto.ContentDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrParamInvalid
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = util.Slugify(title)
	}
	if err := s.checkSlug(ctx, slug, 0); err != nil {
		return nil, err
	}

	item := PT(new(T))
	base := item.Base()
	base.Title = title
	base.Slug = slug
	base.Tags = util.NormalizeTags(in.Tags)
	applyContent(item, in)
	if err := s.repo.Create(ctx, (*T)(item)); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrContentSlugExist
		}
		return nil, err
	}
	return toContentDTO(item), nil
}

func (s *contentServiceImpl[T, PT]) UpdateContent(ctx context.Context, id uint64, in *dto.SaveContentDTO) (*dto.ContentDTO, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrContentNotFound
	}

	item := PT(found)
	base := item.Base()
	if title := strings.TrimSpace(in.Title); title != "" {
		base.Title = title
	}
	if slug := strings.TrimSpace(in.Slug); slug != "" && slug != base.Slug {
		if err = s.checkSlug(ctx, slug, id); err != nil {
			return nil, err
		}
		base.Slug = slug
	}
	if in.Tags != nil {
		base.Tags = util.NormalizeTags(in.Tags)
	}
	applyContent(item, in)

	if err = s.repo.Save(ctx, found); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrContentSlugExist
		}
		return nil, err
	}
	return toContentDTO(item), nil
}

func (s *contentServiceImpl[T, PT]) DeleteContent(ctx context.Context, id uint64) error {
	n, err := s.repo.Delete(ctx, []uint64{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrContentNotFound
	}
	return nil
}

// Batch 内容没有子记录，不支持模块与存储桶相关操作
func (s *contentServiceImpl[T, PT]) Batch(ctx context.Context, in *dto.BatchDTO) (*dto.BatchResult, error) {
	if len(in.IDs) == 0 || len(in.IDs) > consts.MaxBatchSize {
		return nil, ErrParamInvalid
	}
	ids := make([]uint64, 0, len(in.IDs))
	for _, raw := range in.IDs {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, ErrParamInvalid
		}
		ids = append(ids, id)
	}

	var (
		result *dto.BatchResult
		n      int64
		err    error
	)
	switch in.Action {
	case consts.BatchAddTag:
		n, err = s.batchAddTag(ctx, ids, strings.TrimSpace(in.Target))
		result = dto.UpdatedResult(n)
	case consts.BatchDelete:
		n, err = s.repo.Delete(ctx, ids)
		result = dto.DeletedResult(n)
	case consts.BatchUpdateClassification:
		n, err = s.batchPublish(ctx, ids, in.Target)
		result = dto.UpdatedResult(n)
	case consts.BatchAssignModule, consts.BatchMoveBucket:
		return nil, ErrActionUnsupported
	default:
		return nil, ErrUnknownAction
	}

	s.activityService.Record(ctx, s.kind+":"+in.Action, in.Target, in.IDs, n, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *contentServiceImpl[T, PT]) batchAddTag(ctx context.Context, ids []uint64, tag string) (int64, error) {
	if tag == "" {
		return 0, ErrTargetRequired
	}
	var n int64
	err := s.repo.Transaction(ctx, func(repo repository.ContentRepo[T]) error {
		items, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, item := range items {
			base := PT(item).Base()
			tags, changed := base.Tags.With(tag)
			if !changed {
				continue
			}
			if err = repo.UpdateTags(ctx, base.ID, tags); err != nil {
				return err
			}
		}
		n = int64(len(items))
		return nil
	})
	return n, err
}

// batchPublish draft 为撤回，其余分类视为发布并刷新发布时间
func (s *contentServiceImpl[T, PT]) batchPublish(ctx context.Context, ids []uint64, classification string) (int64, error) {
	if !validClassification(classification) {
		return 0, ErrClassificationBad
	}
	return s.repo.SetPublished(ctx, ids, classification != consts.ClassificationDraft, time.Now())
}

func (s *contentServiceImpl[T, PT]) checkSlug(ctx context.Context, slug string, excludeID uint64) error {
	exists, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrContentSlugExist
	}
	return nil
}

// applyContent 写入可选字段，首次发布时记录发布时间
func applyContent[PT interface{ Base() *model.ContentBase }](item PT, in *dto.SaveContentDTO) {
	base := item.Base()
	if in.Body != nil {
		base.Body = *in.Body
	}
	if in.CoverImage != nil {
		base.CoverImage = *in.CoverImage
	}
	if in.Published != nil {
		if *in.Published && !base.Published {
			now := time.Now()
			base.PublishedAt = &now
		}
		base.Published = *in.Published
	}

	if p, ok := any(item).(*model.Project); ok {
		if in.Summary != nil {
			p.Summary = *in.Summary
		}
		if in.ExternalURL != nil {
			p.ExternalURL = *in.ExternalURL
		}
		if in.RepoURL != nil {
			p.RepoURL = *in.RepoURL
		}
	}
}

func toContentDTO[PT interface{ Base() *model.ContentBase }](item PT) *dto.ContentDTO {
	base := item.Base()
	out := &dto.ContentDTO{
		ID:          base.ID,
		Title:       base.Title,
		Slug:        base.Slug,
		Body:        base.Body,
		Excerpt:     util.Excerpt(base.Body, excerptLength),
		CoverImage:  base.CoverImage,
		Published:   base.Published,
		PublishedAt: base.PublishedAt,
		Tags:        []string(base.Tags),
		CreatedAt:   base.CreatedAt,
		UpdatedAt:   base.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.CoverImage == "" {
		out.CoverImage = util.FirstImage(base.Body)
	}
	if p, ok := any(item).(*model.Project); ok {
		out.Summary = p.Summary
		out.ExternalURL = p.ExternalURL
		out.RepoURL = p.RepoURL
	}
	return out
}
