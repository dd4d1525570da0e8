package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	log "log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/ordering"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// MaxUploadSize 单个文件上传上限
const MaxUploadSize = 100 << 20

// UploadFile 上传的文件
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type MediaService interface {
	Upload(ctx context.Context, file *UploadFile, in *dto.MediaUploadDTO) (*dto.MediaDTO, error)
	CreateText(ctx context.Context, in *dto.CreateTextDTO) (*dto.MediaDTO, error)
	ListMedia(ctx context.Context, q *dto.MediaQueryDTO) (*dto.PageResult[*dto.MediaDTO], error)
	UpdateMedia(ctx context.Context, id string, in *dto.UpdateMediaDTO) (*dto.MediaDTO, error)
	DeleteMedia(ctx context.Context, id string) (int64, error)
	Reorder(ctx context.Context, in *dto.ReorderDTO) error
	Move(ctx context.Context, in *dto.MoveDTO) ([]ordering.Position, error)
	Batch(ctx context.Context, in *dto.BatchDTO) (*dto.BatchResult, error)
}

type mediaServiceImpl struct {
	mediaRepo       repository.MediaRepo
	moduleRepo      repository.ModuleRepo
	storage         ObjectStorage
	uploads         UploadTracker
	activityService ActivityService
}

func NewMediaService(mediaRepo repository.MediaRepo, moduleRepo repository.ModuleRepo, storage ObjectStorage, uploads UploadTracker, activityService ActivityService) MediaService {
	return &mediaServiceImpl{
		mediaRepo:       mediaRepo,
		moduleRepo:      moduleRepo,
		storage:         storage,
		uploads:         uploads,
		activityService: activityService,
	}
}

// Upload 识别类型后上传到对象存储并创建记录
func (s *mediaServiceImpl) Upload(ctx context.Context, file *UploadFile, in *dto.MediaUploadDTO) (*dto.MediaDTO, error) {
	if file.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	data, err := util.ReadAllLimit(file.Reader, MaxUploadSize)
	if err != nil {
		if errors.Is(err, util.ErrTooLarge) {
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	contentType, mediaType := util.SniffContentType(data)
	if mediaType == "" {
		return nil, ErrFileNotSupported
	}

	bucket := in.Bucket
	if bucket == "" {
		bucket = s.storage.MainBucket()
	}
	if !s.storage.HasBucket(bucket) {
		return nil, ErrBucketNotAllowed
	}

	if err = s.checkParent(ctx, in.ContentID); err != nil {
		return nil, err
	}

	var width, height int
	if mediaType == consts.MediaTypeImage {
		width, height = util.ImageDimensions(data)
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + strings.ToLower(path.Ext(file.Name))
	objectName, err = s.storage.Upload(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, err
	}

	tempKey := bucket + "/" + objectName
	meta := &dto.MediaTempMetadata{
		Bucket:    bucket,
		Object:    objectName,
		MimeType:  contentType,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now().Unix(),
	}
	if err = s.uploads.Track(ctx, tempKey, meta); err != nil {
		log.WarnContext(ctx, "cache upload metadata failed", "key", tempKey, "err", err)
	}

	media := &model.Media{
		ID:             uuid.NewString(),
		Type:           mediaType,
		URL:            s.storage.PublicURL(bucket, objectName),
		Tags:           moduleTags(in.Module),
		ContentID:      in.ContentID,
		Classification: classificationOrDraft(in.Classification),
		Width:          width,
		Height:         height,
	}
	if err = s.create(ctx, media, in.Module); err != nil {
		return nil, err
	}

	if err = s.uploads.Done(ctx, tempKey); err != nil {
		log.WarnContext(ctx, "clear upload metadata failed", "key", tempKey, "err", err)
	}

	log.InfoContext(ctx, "media upload success", "id", media.ID, "type", mediaType, "bucket", bucket)
	return toMediaDTO(media)
}

func (s *mediaServiceImpl) CreateText(ctx context.Context, in *dto.CreateTextDTO) (*dto.MediaDTO, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrParamInvalid
	}
	if err := s.checkParent(ctx, in.ContentID); err != nil {
		return nil, err
	}

	content := in.Content
	media := &model.Media{
		ID:             uuid.NewString(),
		Type:           consts.MediaTypeText,
		Content:        &content,
		Tags:           moduleTags(in.Module),
		ContentID:      in.ContentID,
		Classification: classificationOrDraft(in.Classification),
	}
	if err := s.create(ctx, media, in.Module); err != nil {
		return nil, err
	}
	return toMediaDTO(media)
}

func (s *mediaServiceImpl) create(ctx context.Context, media *model.Media, module string) error {
	if media.ContentID == nil {
		next, err := s.mediaRepo.NextSortOrder(ctx, module)
		if err != nil {
			return err
		}
		media.SortOrder = next
	}
	return s.mediaRepo.CreateMedia(ctx, media)
}

// checkParent 子记录只能挂在顶层记录下
func (s *mediaServiceImpl) checkParent(ctx context.Context, parentID *string) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.mediaRepo.GetMediaByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrMediaNotFound
	}
	if parent.ContentID != nil {
		return ErrParamInvalid
	}
	return nil
}

func (s *mediaServiceImpl) ListMedia(ctx context.Context, q *dto.MediaQueryDTO) (*dto.PageResult[*dto.MediaDTO], error) {
	q.Normalize()
	list, total, err := s.mediaRepo.QueryMedia(ctx, repository.MediaQuery{
		Module:         q.Module,
		Classification: q.Classification,
		Type:           q.Type,
		Keyword:        strings.TrimSpace(q.Query),
		Offset:         q.Offset(),
		Limit:          q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	result := &dto.PageResult[*dto.MediaDTO]{Total: total, List: make([]*dto.MediaDTO, 0, len(list))}
	for _, m := range list {
		item, err := toMediaDTO(m)
		if err != nil {
			return nil, err
		}
		result.List = append(result.List, item)
	}
	return result, nil
}

func (s *mediaServiceImpl) UpdateMedia(ctx context.Context, id string, in *dto.UpdateMediaDTO) (*dto.MediaDTO, error) {
	media, err := s.mediaRepo.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}

	if in.Content != nil {
		if media.Type != consts.MediaTypeText {
			return nil, ErrParamInvalid
		}
		media.Content = in.Content
	}
	if in.Classification != nil && *in.Classification != media.Classification {
		if !validClassification(*in.Classification) {
			return nil, ErrClassificationBad
		}
		if *in.Classification != consts.ClassificationDraft {
			media.CreatedAt = time.Now()
		}
		media.Classification = *in.Classification
	}
	if in.Tags != nil {
		media.Tags = util.NormalizeTags(*in.Tags)
	}
	if in.ContentID != nil {
		if *in.ContentID == "" {
			media.ContentID = nil
		} else {
			if *in.ContentID == media.ID {
				return nil, ErrParamInvalid
			}
			if err = s.checkParent(ctx, in.ContentID); err != nil {
				return nil, err
			}
			// 只支持一层父子，已有子记录的不能再挂到别处
			children, err := s.mediaRepo.GetChildren(ctx, []string{media.ID})
			if err != nil {
				return nil, err
			}
			if len(children) > 0 {
				return nil, ErrParamInvalid
			}
			media.ContentID = in.ContentID
		}
	}

	if err = s.mediaRepo.SaveMedia(ctx, media); err != nil {
		return nil, err
	}
	return toMediaDTO(media)
}

// DeleteMedia 单条删除复用批量删除流程
func (s *mediaServiceImpl) DeleteMedia(ctx context.Context, id string) (int64, error) {
	n, err := s.batchDelete(ctx, []string{id})
	s.activityService.Record(ctx, "media:delete", "", []string{id}, n, err)
	return n, err
}

// Reorder 按分类内位置写回 sort_order
func (s *mediaServiceImpl) Reorder(ctx context.Context, in *dto.ReorderDTO) error {
	if err := checkReorder(in); err != nil {
		return err
	}

	err := applyReorder(ctx, in.Updates, func(ctx context.Context, item dto.ReorderItem) error {
		_, err := s.mediaRepo.UpdateSortOrder(ctx, item.ID, item.SortOrder)
		return err
	})
	s.activityService.Record(ctx, "media:reorder", in.Scope, reorderIDs(in.Updates), int64(len(in.Updates)), err)
	return err
}

// Move 在模块内移动一条记录，并以连续位置写回整个模块
func (s *mediaServiceImpl) Move(ctx context.Context, in *dto.MoveDTO) ([]ordering.Position, error) {
	list, err := s.mediaRepo.ListByModule(ctx, in.Module)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}

	draft := ordering.NewDraft(ids)
	if err = draft.MoveID(in.ID, in.To); err != nil {
		return nil, ErrPositionOutOfRange
	}

	positions := draft.Updates()
	updates := make([]dto.ReorderItem, 0, len(positions))
	for i, p := range positions {
		if list[indexOf(ids, p.ID)].SortOrder == i {
			continue
		}
		updates = append(updates, dto.ReorderItem{ID: p.ID, SortOrder: p.SortOrder})
	}
	if len(updates) == 0 {
		return positions, nil
	}

	err = s.Reorder(ctx, &dto.ReorderDTO{Updates: updates, Scope: in.Module})
	if err != nil {
		draft.Rollback()
		return nil, err
	}
	draft.Commit()
	return positions, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Batch 批量操作入口，除 move_bucket 外均级联到子记录
func (s *mediaServiceImpl) Batch(ctx context.Context, in *dto.BatchDTO) (*dto.BatchResult, error) {
	if len(in.IDs) == 0 || len(in.IDs) > consts.MaxBatchSize {
		return nil, ErrParamInvalid
	}

	var (
		result *dto.BatchResult
		n      int64
		err    error
	)
	switch in.Action {
	case consts.BatchAssignModule:
		n, err = s.batchAssignModule(ctx, in)
		result = dto.UpdatedResult(n)
	case consts.BatchAddTag:
		n, err = s.batchAddTag(ctx, in.IDs, strings.TrimSpace(in.Target))
		result = dto.UpdatedResult(n)
	case consts.BatchDelete:
		n, err = s.batchDelete(ctx, in.IDs)
		result = dto.DeletedResult(n)
	case consts.BatchUpdateClassification:
		n, err = s.batchUpdateClassification(ctx, in.IDs, in.Target)
		result = dto.UpdatedResult(n)
	case consts.BatchMoveBucket:
		n, err = s.batchMoveBucket(ctx, in.IDs, in.Target)
		result = dto.UpdatedResult(n)
	default:
		return nil, ErrUnknownAction
	}

	s.activityService.Record(ctx, "media:"+in.Action, in.Target, in.IDs, n, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *mediaServiceImpl) batchAssignModule(ctx context.Context, in *dto.BatchDTO) (int64, error) {
	target := strings.TrimSpace(in.Target)
	if in.TargetID != nil && strings.TrimSpace(*in.TargetID) != "" {
		moduleID, err := strconv.ParseUint(strings.TrimSpace(*in.TargetID), 10, 64)
		if err != nil {
			return 0, ErrParamInvalid
		}
		module, err := s.moduleRepo.GetModuleByID(ctx, moduleID)
		if err != nil {
			return 0, err
		}
		if module == nil {
			return 0, ErrModuleNotFound
		}
		target = module.Slug
	}
	if target == "" {
		return 0, ErrTargetRequired
	}

	tags := model.Tags{}
	if target != consts.UncategorizedModule {
		tags = model.Tags{target}
	}

	var n int64
	err := s.mediaRepo.Transaction(ctx, func(repo repository.MediaRepo) error {
		family, err := repo.GetFamily(ctx, in.IDs)
		if err != nil {
			return err
		}
		if _, err = repo.SetTags(ctx, mediaIDs(family), tags); err != nil {
			return err
		}
		n = int64(len(family))
		return nil
	})
	return n, err
}

// batchAddTag 已有该标签的记录不重复追加
func (s *mediaServiceImpl) batchAddTag(ctx context.Context, ids []string, tag string) (int64, error) {
	if tag == "" {
		return 0, ErrTargetRequired
	}

	var n int64
	err := s.mediaRepo.Transaction(ctx, func(repo repository.MediaRepo) error {
		family, err := repo.GetFamily(ctx, ids)
		if err != nil {
			return err
		}
		for _, m := range family {
			tags, changed := m.Tags.With(tag)
			if !changed {
				continue
			}
			if err = repo.UpdateTags(ctx, m.ID, tags); err != nil {
				return err
			}
		}
		n = int64(len(family))
		return nil
	})
	return n, err
}

// batchDelete 先按桶删除存储对象，失败只记录日志，再删除数据库记录
func (s *mediaServiceImpl) batchDelete(ctx context.Context, ids []string) (int64, error) {
	family, err := s.mediaRepo.GetFamily(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(family) == 0 {
		return 0, nil
	}

	for bucket, objects := range groupByBucket(family, s.storage) {
		if rErr := s.storage.Remove(ctx, bucket, objects); rErr != nil {
			log.WarnContext(ctx, "remove storage objects failed", "bucket", bucket, "count", len(objects), "err", rErr)
		}
	}

	return s.mediaRepo.DeleteMedia(ctx, mediaIDs(family))
}

// batchUpdateClassification 非草稿时刷新创建时间，使发布的内容排到时间流顶部
func (s *mediaServiceImpl) batchUpdateClassification(ctx context.Context, ids []string, classification string) (int64, error) {
	if !validClassification(classification) {
		return 0, ErrClassificationBad
	}
	var bump *time.Time
	if classification != consts.ClassificationDraft {
		now := time.Now()
		bump = &now
	}

	var n int64
	err := s.mediaRepo.Transaction(ctx, func(repo repository.MediaRepo) error {
		family, err := repo.GetFamily(ctx, ids)
		if err != nil {
			return err
		}
		if _, err = repo.UpdateClassification(ctx, mediaIDs(family), classification, bump); err != nil {
			return err
		}
		n = int64(len(family))
		return nil
	})
	return n, err
}

// batchMoveBucket 复制到目标桶并改写 URL 后删除源对象，不级联
func (s *mediaServiceImpl) batchMoveBucket(ctx context.Context, ids []string, target string) (int64, error) {
	if target == "" {
		return 0, ErrTargetRequired
	}
	if !s.storage.HasBucket(target) {
		return 0, ErrBucketNotAllowed
	}

	records, err := s.mediaRepo.GetMediaByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, m := range records {
		if m.URL == "" {
			continue
		}
		bucket, object, lErr := s.storage.Locate(m.URL)
		if lErr != nil {
			log.WarnContext(ctx, "skip media outside storage", "id", m.ID, "url", m.URL)
			continue
		}
		if bucket == target {
			continue
		}

		if err = s.storage.Copy(ctx, bucket, object, target); err != nil {
			return n, err
		}
		if err = s.mediaRepo.UpdateURL(ctx, m.ID, s.storage.PublicURL(target, object)); err != nil {
			return n, err
		}
		n++

		if rErr := s.storage.Remove(ctx, bucket, []string{object}); rErr != nil {
			log.WarnContext(ctx, "remove source object failed", "bucket", bucket, "object", object, "err", rErr)
		}
	}
	return n, nil
}

// groupByBucket 解析记录的存储位置并按桶分组
func groupByBucket(media []*model.Media, storage ObjectStorage) map[string][]string {
	groups := make(map[string][]string)
	for _, m := range media {
		if m.URL == "" {
			continue
		}
		bucket, object, err := storage.Locate(m.URL)
		if err != nil {
			continue
		}
		groups[bucket] = append(groups[bucket], object)
	}
	return groups
}

func mediaIDs(media []*model.Media) []string {
	ids := make([]string, 0, len(media))
	for _, m := range media {
		ids = append(ids, m.ID)
	}
	return ids
}

func moduleTags(module string) model.Tags {
	module = strings.TrimSpace(module)
	if module == "" || module == consts.UncategorizedModule {
		return model.Tags{}
	}
	return model.Tags{module}
}

func validClassification(c string) bool {
	switch c {
	case consts.ClassificationDraft, consts.ClassificationProfessional, consts.ClassificationPersonal:
		return true
	}
	return false
}

func classificationOrDraft(c string) string {
	if c == "" {
		return consts.ClassificationDraft
	}
	return c
}

func toMediaDTO(m *model.Media) (*dto.MediaDTO, error) {
	out := &dto.MediaDTO{}
	if err := copier.Copy(out, m); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out, nil
}
