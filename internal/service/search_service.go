package service

import (
	"context"
	log "log/slog"
	"strings"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/es"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"
)

const (
	reindexBatchSize = 200
	snippetLength    = 200
)

type SearchService interface {
	Search(ctx context.Context, in *dto.SearchDTO) (*dto.PageResult[*dto.SearchHitDTO], error)
	Reindex(ctx context.Context) (int, error)
}

type searchServiceImpl struct {
	contentES   es.ContentRepo
	mediaRepo   repository.MediaRepo
	articleRepo repository.ContentRepo[model.Article]
	projectRepo repository.ContentRepo[model.Project]
	postRepo    repository.ContentRepo[model.Post]
}

func NewSearchService(contentES es.ContentRepo, mediaRepo repository.MediaRepo, articleRepo repository.ContentRepo[model.Article], projectRepo repository.ContentRepo[model.Project], postRepo repository.ContentRepo[model.Post]) SearchService {
	return &searchServiceImpl{
		contentES:   contentES,
		mediaRepo:   mediaRepo,
		articleRepo: articleRepo,
		projectRepo: projectRepo,
		postRepo:    postRepo,
	}
}

func (s *searchServiceImpl) Search(ctx context.Context, in *dto.SearchDTO) (*dto.PageResult[*dto.SearchHitDTO], error) {
	if s.contentES == nil {
		return nil, ErrSearchUnavailable
	}
	in.Normalize()
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, ErrParamInvalid
	}

	docs, total, err := s.contentES.Search(ctx, query, in.Offset(), in.PageSize)
	if err != nil {
		log.ErrorContext(ctx, "search content failed", "err", err)
		return nil, err
	}

	result := &dto.PageResult[*dto.SearchHitDTO]{Total: total, List: make([]*dto.SearchHitDTO, 0, len(docs))}
	for _, d := range docs {
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		result.List = append(result.List, &dto.SearchHitDTO{
			Kind:      d.Kind,
			ID:        d.ID,
			Title:     d.Title,
			Snippet:   util.Truncate(d.Text, snippetLength),
			Tags:      tags,
			CreatedAt: d.CreatedAt,
		})
	}
	return result, nil
}

// Reindex 从 MySQL 全量重建索引，返回写入的文档数
func (s *searchServiceImpl) Reindex(ctx context.Context) (int, error) {
	if s.contentES == nil {
		return 0, ErrSearchUnavailable
	}
	if err := s.contentES.EnsureIndex(ctx); err != nil {
		return 0, err
	}

	count := 0
	index := func(doc *es.ContentES) error {
		if err := s.contentES.IndexContent(ctx, doc, 0); err != nil {
			return err
		}
		count++
		return nil
	}

	err := s.mediaRepo.FindInBatches(ctx, reindexBatchSize, func(batch []*model.Media) error {
		for _, m := range batch {
			if err := index(es.FromMedia(m)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	if err = reindexContents(ctx, consts.ContentKindArticles, s.articleRepo, index); err != nil {
		return count, err
	}
	if err = reindexContents(ctx, consts.ContentKindProjects, s.projectRepo, index); err != nil {
		return count, err
	}
	if err = reindexContents(ctx, consts.ContentKindPosts, s.postRepo, index); err != nil {
		return count, err
	}

	log.InfoContext(ctx, "search reindex finished", "count", count)
	return count, nil
}

func reindexContents[T any, PT contentModel[T]](ctx context.Context, kind string, repo repository.ContentRepo[T], index func(doc *es.ContentES) error) error {
	return repo.FindInBatches(ctx, reindexBatchSize, func(batch []*T) error {
		for _, item := range batch {
			if err := index(es.FromContent(kind, PT(item).Base())); err != nil {
				return err
			}
		}
		return nil
	})
}
