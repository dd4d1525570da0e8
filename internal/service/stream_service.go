package service

import (
	"context"
	log "log/slog"
	"sync"

	"Folio/internal/api/config"
	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/stream"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"

	"golang.org/x/sync/errgroup"
)

const excerptLength = 160

type StreamService interface {
	GetStream(ctx context.Context, q *dto.StreamQueryDTO) ([]*dto.StreamEntryDTO, error)
}

type streamServiceImpl struct {
	mediaRepo   repository.MediaRepo
	articleRepo repository.ContentRepo[model.Article]
	projectRepo repository.ContentRepo[model.Project]
	storage     ObjectStorage
	cfg         config.StreamConfig
}

func NewStreamService(mediaRepo repository.MediaRepo, articleRepo repository.ContentRepo[model.Article], projectRepo repository.ContentRepo[model.Project], storage ObjectStorage, cfg config.StreamConfig) StreamService {
	return &streamServiceImpl{
		mediaRepo:   mediaRepo,
		articleRepo: articleRepo,
		projectRepo: projectRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// GetStream 首页时间流
func (s *streamServiceImpl) GetStream(ctx context.Context, q *dto.StreamQueryDTO) ([]*dto.StreamEntryDTO, error) {
	media, err := s.mediaRepo.ListPublic(ctx, q.Module)
	if err != nil {
		return nil, err
	}

	textIDs := make([]string, 0)
	for _, m := range media {
		if m.Type == consts.MediaTypeText {
			textIDs = append(textIDs, m.ID)
		}
	}
	children, err := s.mediaRepo.ListPublicChildren(ctx, textIDs)
	if err != nil {
		return nil, err
	}
	attached := make(map[string][]*model.Media)
	for _, c := range children {
		if c.ContentID != nil && c.Type == consts.MediaTypeImage {
			attached[*c.ContentID] = append(attached[*c.ContentID], c)
		}
	}

	var articles []*model.Article
	var projects []*model.Project
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !q.Articles {
			return nil
		}
		var gErr error
		articles, gErr = s.articleRepo.ListPublished(gCtx)
		return gErr
	})
	g.Go(func() error {
		if !q.Projects {
			return nil
		}
		var gErr error
		projects, gErr = s.projectRepo.ListPublished(gCtx)
		return gErr
	})
	textContents := s.resolveTexts(ctx, media)
	if err = g.Wait(); err != nil {
		return nil, err
	}

	entries := stream.Build(media, textContents, articles, projects)
	if promo := s.promo(); promo != nil {
		entries = stream.InsertPromo(entries, promo, s.cfg.Promo.Position)
	}

	out := make([]*dto.StreamEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toStreamEntryDTO(e, attached))
	}
	return out, nil
}

// resolveTexts 优先使用内联内容，否则并发从对象存储读取，读取失败时不写入映射
func (s *streamServiceImpl) resolveTexts(ctx context.Context, media []*model.Media) map[string]string {
	contents := make(map[string]string)
	var mu sync.Mutex

	limit := s.cfg.TextFetchConcurrency
	if limit <= 0 {
		limit = 8
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for _, m := range media {
		if m.Type != consts.MediaTypeText {
			continue
		}
		if m.Content != nil {
			mu.Lock()
			contents[m.ID] = *m.Content
			mu.Unlock()
			continue
		}
		if m.URL == "" {
			continue
		}
		g.Go(func() error {
			bucket, object, err := s.storage.Locate(m.URL)
			if err != nil {
				log.WarnContext(ctx, "text media outside storage", "id", m.ID, "url", m.URL)
				return nil
			}
			text, err := s.storage.ReadText(ctx, bucket, object, consts.TextObjectLimit)
			if err != nil {
				log.WarnContext(ctx, "fetch text content failed", "id", m.ID, "err", err)
				return nil
			}
			mu.Lock()
			contents[m.ID] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return contents
}

func (s *streamServiceImpl) promo() *stream.Promo {
	if !s.cfg.Promo.Enable || s.cfg.Promo.Title == "" {
		return nil
	}
	return &stream.Promo{Title: s.cfg.Promo.Title, Link: s.cfg.Promo.Link}
}

func toStreamEntryDTO(e stream.Entry, attached map[string][]*model.Media) *dto.StreamEntryDTO {
	out := &dto.StreamEntryDTO{Kind: string(e.Kind), Timestamp: e.Timestamp}
	switch e.Kind {
	case stream.KindPhotos:
		out.Photos = toPhotoDTOs(e.Photos)
	case stream.KindText:
		out.Text = &dto.StreamTextDTO{
			ID:      e.Text.ID,
			Content: e.Content,
			Images:  toPhotoDTOs(attached[e.Text.ID]),
		}
	case stream.KindArticle:
		out.Article = toStreamContentDTO(&e.Article.ContentBase)
	case stream.KindProject:
		out.Project = toStreamContentDTO(&e.Project.ContentBase)
		if e.Project.Summary != "" {
			out.Project.Excerpt = e.Project.Summary
		}
	case stream.KindPromo:
		out.Promo = &dto.StreamPromoDTO{Title: e.Promo.Title, Link: e.Promo.Link}
	}
	return out
}

func toPhotoDTOs(media []*model.Media) []dto.StreamPhotoDTO {
	if len(media) == 0 {
		return nil
	}
	out := make([]dto.StreamPhotoDTO, 0, len(media))
	for _, m := range media {
		out = append(out, dto.StreamPhotoDTO{ID: m.ID, URL: m.URL, Width: m.Width, Height: m.Height})
	}
	return out
}

func toStreamContentDTO(c *model.ContentBase) *dto.StreamContentDTO {
	cover := c.CoverImage
	if cover == "" {
		cover = util.FirstImage(c.Body)
	}
	return &dto.StreamContentDTO{
		ID:         c.ID,
		Title:      c.Title,
		Slug:       c.Slug,
		Excerpt:    util.Excerpt(c.Body, excerptLength),
		CoverImage: cover,
	}
}
