package service

import (
	"context"
	"strconv"
	"strings"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"

	"github.com/jinzhu/copier"
)

type ModuleService interface {
	ListModules(ctx context.Context, includeDisabled bool) ([]*dto.ModuleDTO, error)
	CreateModule(ctx context.Context, in *dto.CreateModuleDTO) (*dto.ModuleDTO, error)
	UpdateModule(ctx context.Context, id uint64, in *dto.UpdateModuleDTO) (*dto.ModuleDTO, error)
	DeleteModule(ctx context.Context, id uint64) error
	Reorder(ctx context.Context, in *dto.ReorderDTO) error
}

type moduleServiceImpl struct {
	moduleRepo      repository.ModuleRepo
	activityService ActivityService
}

func NewModuleService(moduleRepo repository.ModuleRepo, activityService ActivityService) ModuleService {
	return &moduleServiceImpl{
		moduleRepo:      moduleRepo,
		activityService: activityService,
	}
}

func (s *moduleServiceImpl) ListModules(ctx context.Context, includeDisabled bool) ([]*dto.ModuleDTO, error) {
	modules, err := s.moduleRepo.ListModules(ctx, !includeDisabled)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ModuleDTO, 0, len(modules))
	if err = copier.Copy(&out, &modules); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *moduleServiceImpl) CreateModule(ctx context.Context, in *dto.CreateModuleDTO) (*dto.ModuleDTO, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = util.Slugify(in.Name)
	}
	if slug == consts.UncategorizedModule {
		return nil, ErrModuleSlugExist
	}
	exist, err := s.moduleRepo.GetModuleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrModuleSlugExist
	}

	next, err := s.moduleRepo.NextSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	module := &model.Module{
		Slug:        slug,
		Name:        in.Name,
		Icon:        in.Icon,
		AccentColor: in.AccentColor,
		Enabled:     in.Enabled == nil || *in.Enabled,
		SortOrder:   next,
		Category:    in.Category,
	}
	if module.Category == "" {
		module.Category = consts.ModuleCategoryWork
	}
	if err = s.moduleRepo.CreateModule(ctx, module); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrModuleSlugExist
		}
		return nil, err
	}
	return toModuleDTO(module), nil
}

func (s *moduleServiceImpl) UpdateModule(ctx context.Context, id uint64, in *dto.UpdateModuleDTO) (*dto.ModuleDTO, error) {
	module, err := s.moduleRepo.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	if in.Name != nil {
		module.Name = *in.Name
	}
	if in.Icon != nil {
		module.Icon = *in.Icon
	}
	if in.AccentColor != nil {
		module.AccentColor = *in.AccentColor
	}
	if in.Enabled != nil {
		module.Enabled = *in.Enabled
	}
	if in.Category != nil {
		module.Category = *in.Category
	}
	if err = s.moduleRepo.SaveModule(ctx, module); err != nil {
		return nil, err
	}
	return toModuleDTO(module), nil
}

func (s *moduleServiceImpl) DeleteModule(ctx context.Context, id uint64) error {
	n, err := s.moduleRepo.DeleteModule(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrModuleNotFound
	}
	return nil
}

func (s *moduleServiceImpl) Reorder(ctx context.Context, in *dto.ReorderDTO) error {
	if err := checkReorder(in); err != nil {
		return err
	}
	ids := make(map[string]uint64, len(in.Updates))
	for _, u := range in.Updates {
		id, err := strconv.ParseUint(u.ID, 10, 64)
		if err != nil {
			return ErrParamInvalid
		}
		ids[u.ID] = id
	}

	err := applyReorder(ctx, in.Updates, func(ctx context.Context, item dto.ReorderItem) error {
		_, err := s.moduleRepo.UpdateSortOrder(ctx, ids[item.ID], item.SortOrder)
		return err
	})
	s.activityService.Record(ctx, "module:reorder", "", reorderIDs(in.Updates), int64(len(in.Updates)), err)
	return err
}

func toModuleDTO(m *model.Module) *dto.ModuleDTO {
	return &dto.ModuleDTO{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Icon:        m.Icon,
		AccentColor: m.AccentColor,
		Enabled:     m.Enabled,
		SortOrder:   m.SortOrder,
		Category:    m.Category,
	}
}
