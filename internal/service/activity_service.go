package service

import (
	"context"
	log "log/slog"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/pkg/logger"
	"Folio/internal/pkg/mongo"
)

type ActivityService interface {
	Record(ctx context.Context, action, target string, ids []string, affected int64, err error)
	ListActivities(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.ActivityDTO], error)
}

type activityServiceImpl struct {
	activityRepo mongo.ActivityRepo
}

// NewActivityService activityRepo 为空时不记录
func NewActivityService(activityRepo mongo.ActivityRepo) ActivityService {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// Record 尽力写入操作记录，失败只记日志
func (s *activityServiceImpl) Record(ctx context.Context, action, target string, ids []string, affected int64, err error) {
	if s.activityRepo == nil {
		return
	}
	activity := &mongo.ActivityModel{
		Email:     logger.UserEmail(ctx),
		Action:    action,
		Target:    target,
		IDs:       ids,
		Affected:  affected,
		CreatedAt: time.Now(),
	}
	if err != nil {
		activity.Error = err.Error()
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if wErr := s.activityRepo.CreateActivity(writeCtx, activity); wErr != nil {
		log.WarnContext(ctx, "record activity failed", "action", action, "err", wErr)
	}
}

func (s *activityServiceImpl) ListActivities(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.ActivityDTO], error) {
	page.Normalize()
	result := &dto.PageResult[*dto.ActivityDTO]{List: make([]*dto.ActivityDTO, 0)}
	if s.activityRepo == nil {
		return result, nil
	}

	list, total, err := s.activityRepo.ListActivities(ctx, int64(page.PageSize), int64(page.Offset()))
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		result.List = append(result.List, &dto.ActivityDTO{
			ID:        a.ID.Hex(),
			Email:     a.Email,
			Action:    a.Action,
			Target:    a.Target,
			IDs:       a.IDs,
			Affected:  a.Affected,
			Error:     a.Error,
			CreatedAt: a.CreatedAt,
		})
	}
	result.Total = total
	return result, nil
}
