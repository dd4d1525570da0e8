package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/repository"
)

type fakeMediaRepo struct {
	mu          sync.Mutex
	items       map[string]*model.Media
	tagWrites   int
	sortWrites  map[string]int
	failSortFor string
}

func newFakeMediaRepo(items ...*model.Media) *fakeMediaRepo {
	f := &fakeMediaRepo{items: make(map[string]*model.Media), sortWrites: make(map[string]int)}
	for _, m := range items {
		f.items[m.ID] = m
	}
	return f
}

func (f *fakeMediaRepo) get(id string) *model.Media {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id]
}

func (f *fakeMediaRepo) sorted(filter func(m *model.Media) bool) []*model.Media {
	out := make([]*model.Media, 0)
	for _, m := range f.items {
		if filter(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeMediaRepo) Transaction(_ context.Context, fn func(repo repository.MediaRepo) error) error {
	return fn(f)
}

func (f *fakeMediaRepo) CreateMedia(_ context.Context, media *model.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[media.ID] = media
	return nil
}

func (f *fakeMediaRepo) GetMediaByID(_ context.Context, id string) (*model.Media, error) {
	return f.get(id), nil
}

func (f *fakeMediaRepo) GetMediaByIDs(_ context.Context, ids []string) ([]*model.Media, error) {
	out := make([]*model.Media, 0, len(ids))
	for _, id := range ids {
		if m := f.get(id); m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) GetChildren(_ context.Context, parentIDs []string) ([]*model.Media, error) {
	return f.sorted(func(m *model.Media) bool {
		return m.ContentID != nil && contains(parentIDs, *m.ContentID)
	}), nil
}

func (f *fakeMediaRepo) GetFamily(_ context.Context, ids []string) ([]*model.Media, error) {
	return f.sorted(func(m *model.Media) bool {
		return contains(ids, m.ID) || (m.ContentID != nil && contains(ids, *m.ContentID))
	}), nil
}

func (f *fakeMediaRepo) ListPublic(_ context.Context, module string) ([]*model.Media, error) {
	out := f.sorted(func(m *model.Media) bool {
		return m.ContentID == nil && m.Classification != consts.ClassificationDraft &&
			(module == "" || m.Tags.Contains(module))
	})
	if module == "" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

func (f *fakeMediaRepo) ListPublicChildren(_ context.Context, parentIDs []string) ([]*model.Media, error) {
	return f.sorted(func(m *model.Media) bool {
		return m.ContentID != nil && contains(parentIDs, *m.ContentID) && m.Classification != consts.ClassificationDraft
	}), nil
}

func (f *fakeMediaRepo) ListByModule(_ context.Context, module string) ([]*model.Media, error) {
	return f.sorted(func(m *model.Media) bool {
		return m.ContentID == nil && m.Tags.Contains(module)
	}), nil
}

func (f *fakeMediaRepo) QueryMedia(_ context.Context, q repository.MediaQuery) ([]*model.Media, int64, error) {
	out := f.sorted(func(m *model.Media) bool {
		return (q.Module == "" || m.Tags.Contains(q.Module)) && (q.Type == "" || m.Type == q.Type)
	})
	return out, int64(len(out)), nil
}

func (f *fakeMediaRepo) NextSortOrder(_ context.Context, module string) (int, error) {
	if module == "" {
		return 0, nil
	}
	next := 0
	for _, m := range f.items {
		if m.Tags.Contains(module) && m.SortOrder >= next {
			next = m.SortOrder + 1
		}
	}
	return next, nil
}

func (f *fakeMediaRepo) SaveMedia(_ context.Context, media *model.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[media.ID] = media
	return nil
}

func (f *fakeMediaRepo) UpdateSortOrder(_ context.Context, id string, sortOrder int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.failSortFor {
		return 0, errors.New("deadlock found")
	}
	m, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	m.SortOrder = sortOrder
	f.sortWrites[id] = sortOrder
	return 1, nil
}

func (f *fakeMediaRepo) UpdateTags(_ context.Context, id string, tags model.Tags) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagWrites++
	f.items[id].Tags = tags
	return nil
}

func (f *fakeMediaRepo) SetTags(_ context.Context, ids []string, tags model.Tags) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.items[id].Tags = tags
	}
	return int64(len(ids)), nil
}

func (f *fakeMediaRepo) UpdateClassification(_ context.Context, ids []string, classification string, createdAt *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.items[id].Classification = classification
		if createdAt != nil {
			f.items[id].CreatedAt = *createdAt
		}
	}
	return int64(len(ids)), nil
}

func (f *fakeMediaRepo) UpdateURL(_ context.Context, id string, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id].URL = url
	return nil
}

func (f *fakeMediaRepo) DeleteMedia(_ context.Context, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.items[id]; ok {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeMediaRepo) FindInBatches(_ context.Context, _ int, fn func(batch []*model.Media) error) error {
	return fn(f.sorted(func(*model.Media) bool { return true }))
}

type fakeModuleRepo struct {
	modules map[uint64]*model.Module
	orders  map[uint64]int
	mu      sync.Mutex
}

func newFakeModuleRepo(modules ...*model.Module) *fakeModuleRepo {
	f := &fakeModuleRepo{modules: make(map[uint64]*model.Module), orders: make(map[uint64]int)}
	for _, m := range modules {
		f.modules[m.ID] = m
	}
	return f
}

func (f *fakeModuleRepo) ListModules(_ context.Context, enabledOnly bool) ([]*model.Module, error) {
	out := make([]*model.Module, 0)
	for _, m := range f.modules {
		if !enabledOnly || m.Enabled {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeModuleRepo) GetModuleByID(_ context.Context, id uint64) (*model.Module, error) {
	return f.modules[id], nil
}

func (f *fakeModuleRepo) GetModuleBySlug(_ context.Context, slug string) (*model.Module, error) {
	for _, m := range f.modules {
		if m.Slug == slug {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeModuleRepo) CreateModule(_ context.Context, module *model.Module) error {
	module.ID = uint64(len(f.modules) + 1)
	f.modules[module.ID] = module
	return nil
}

func (f *fakeModuleRepo) SaveModule(_ context.Context, module *model.Module) error {
	f.modules[module.ID] = module
	return nil
}

func (f *fakeModuleRepo) DeleteModule(_ context.Context, id uint64) (int64, error) {
	if _, ok := f.modules[id]; !ok {
		return 0, nil
	}
	delete(f.modules, id)
	return 1, nil
}

func (f *fakeModuleRepo) UpdateSortOrder(_ context.Context, id uint64, sortOrder int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[id] = sortOrder
	return 1, nil
}

func (f *fakeModuleRepo) NextSortOrder(context.Context) (int, error) {
	return len(f.modules), nil
}

// fakeStorage URL 形如 https://cdn.test/<bucket>/<object>
type fakeStorage struct {
	mu       sync.Mutex
	buckets  []string
	objects  map[string]string
	removed  map[string][]string
	copied   []string
	failRead map[string]bool
	failRm   map[string]bool
}

func newFakeStorage(buckets ...string) *fakeStorage {
	return &fakeStorage{
		buckets:  buckets,
		objects:  make(map[string]string),
		removed:  make(map[string][]string),
		failRead: make(map[string]bool),
		failRm:   make(map[string]bool),
	}
}

func (f *fakeStorage) MainBucket() string { return f.buckets[0] }

func (f *fakeStorage) HasBucket(bucket string) bool { return contains(f.buckets, bucket) }

func (f *fakeStorage) Upload(_ context.Context, bucket, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+objectName] = string(data)
	return objectName, nil
}

func (f *fakeStorage) Remove(_ context.Context, bucket string, objectNames []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed[bucket] = append(f.removed[bucket], objectNames...)
	if f.failRm[bucket] {
		return errors.New("bucket unavailable")
	}
	return nil
}

func (f *fakeStorage) Copy(_ context.Context, srcBucket, objectName, dstBucket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copied = append(f.copied, srcBucket+"/"+objectName+"->"+dstBucket)
	return nil
}

func (f *fakeStorage) ReadText(_ context.Context, bucket, objectName string, _ int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := bucket + "/" + objectName
	if f.failRead[key] {
		return "", errors.New("object unavailable")
	}
	return f.objects[key], nil
}

func (f *fakeStorage) PublicURL(bucket, objectName string) string {
	return "https://cdn.test/" + bucket + "/" + objectName
}

func (f *fakeStorage) Locate(rawURL string) (string, string, error) {
	rest, ok := strings.CutPrefix(rawURL, "https://cdn.test/")
	if !ok {
		return "", "", errors.New("foreign url")
	}
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok {
		return "", "", errors.New("missing object")
	}
	return bucket, object, nil
}

type fakeUploads struct {
	tracked map[string]*dto.MediaTempMetadata
	done    []string
}

func newFakeUploads() *fakeUploads {
	return &fakeUploads{tracked: make(map[string]*dto.MediaTempMetadata)}
}

func (f *fakeUploads) Track(_ context.Context, field string, meta *dto.MediaTempMetadata) error {
	f.tracked[field] = meta
	return nil
}

func (f *fakeUploads) Done(_ context.Context, fields ...string) error {
	f.done = append(f.done, fields...)
	for _, field := range fields {
		delete(f.tracked, field)
	}
	return nil
}

func (f *fakeUploads) Expired(context.Context, time.Time) (map[string]*dto.MediaTempMetadata, error) {
	return nil, nil
}

type fakeTokenStore struct {
	revoked map[string]time.Duration
}

func (f *fakeTokenStore) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	f.revoked[signature] = ttl
	return nil
}

func (f *fakeTokenStore) IsRevoked(_ context.Context, signature string) (bool, error) {
	_, ok := f.revoked[signature]
	return ok, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = uint64(len(f.users) + 1)
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, hash string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
		}
	}
	return nil
}

// fakeContentRepo 只实现服务测试用到的行为
type fakeContentRepo[T any] struct {
	items     []*T
	published []bool
	deleted   []uint64
	tagged    map[uint64]model.Tags
	base      func(*T) *model.ContentBase
}

func (f *fakeContentRepo[T]) Transaction(_ context.Context, fn func(repo repository.ContentRepo[T]) error) error {
	return fn(f)
}

func (f *fakeContentRepo[T]) Create(_ context.Context, item *T) error {
	f.base(item).ID = uint64(len(f.items) + 1)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeContentRepo[T]) Save(context.Context, *T) error { return nil }

func (f *fakeContentRepo[T]) GetByID(_ context.Context, id uint64) (*T, error) {
	for _, item := range f.items {
		if f.base(item).ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeContentRepo[T]) GetBySlug(_ context.Context, slug string) (*T, error) {
	for _, item := range f.items {
		if f.base(item).Slug == slug {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeContentRepo[T]) GetByIDs(_ context.Context, ids []uint64) ([]*T, error) {
	out := make([]*T, 0)
	for _, item := range f.items {
		for _, id := range ids {
			if f.base(item).ID == id {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (f *fakeContentRepo[T]) List(_ context.Context, _ bool, _, _ int) ([]*T, int64, error) {
	return f.items, int64(len(f.items)), nil
}

func (f *fakeContentRepo[T]) ListPublished(context.Context) ([]*T, error) {
	out := make([]*T, 0)
	for _, item := range f.items {
		if f.base(item).Published {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContentRepo[T]) SlugExists(_ context.Context, slug string, excludeID uint64) (bool, error) {
	for _, item := range f.items {
		b := f.base(item)
		if b.Slug == slug && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContentRepo[T]) UpdateTags(_ context.Context, id uint64, tags model.Tags) error {
	if f.tagged == nil {
		f.tagged = make(map[uint64]model.Tags)
	}
	f.tagged[id] = tags
	return nil
}

func (f *fakeContentRepo[T]) SetPublished(_ context.Context, ids []uint64, published bool, _ time.Time) (int64, error) {
	f.published = append(f.published, published)
	return int64(len(ids)), nil
}

func (f *fakeContentRepo[T]) Delete(_ context.Context, ids []uint64) (int64, error) {
	f.deleted = append(f.deleted, ids...)
	return int64(len(ids)), nil
}

func (f *fakeContentRepo[T]) FindInBatches(_ context.Context, _ int, fn func(batch []*T) error) error {
	return fn(f.items)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
