package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth 深分页限制
const MaxSearchDepth = 10000

type ContentRepo interface {
	EnsureIndex(ctx context.Context) error
	IndexContent(ctx context.Context, doc *ContentES, version int64) error
	DeleteContent(ctx context.Context, kind, id string) error
	Search(ctx context.Context, queryText string, from, size int) ([]*ContentES, int64, error)
}

type contentRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewContentRepo(client *elasticsearch.TypedClient) ContentRepo {
	return &contentRepoImpl{client: client}
}

// EnsureIndex 索引不存在时按映射创建
func (s *contentRepoImpl) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(ContentIndex).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.client.Indices.Create(ContentIndex).
		Mappings(&types.TypeMapping{
			Properties: map[string]types.Property{
				"kind":       types.NewKeywordProperty(),
				"id":         types.NewKeywordProperty(),
				"title":      types.NewTextProperty(),
				"slug":       types.NewKeywordProperty(),
				"text":       types.NewTextProperty(),
				"tags":       types.NewKeywordProperty(),
				"public":     types.NewBooleanProperty(),
				"created_at": types.NewDateProperty(),
			},
		}).
		Do(ctx)
	return err
}

// IndexContent 使用外部版本号写入，旧版本的变更被忽略
func (s *contentRepoImpl) IndexContent(ctx context.Context, doc *ContentES, version int64) error {
	req := s.client.Index(ContentIndex).
		Id(DocID(doc.Kind, doc.ID)).
		Document(doc)
	if version > 0 {
		req.Version(strconv.FormatInt(version, 10)).VersionType(versiontype.External)
	}

	if _, err := req.Do(ctx); err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *contentRepoImpl) DeleteContent(ctx context.Context, kind, id string) error {
	_, err := s.client.Delete(ContentIndex, DocID(kind, id)).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// Search 只检索公开内容
func (s *contentRepoImpl) Search(ctx context.Context, queryText string, from, size int) ([]*ContentES, int64, error) {
	if from >= MaxSearchDepth {
		return []*ContentES{}, 0, nil
	}

	req := s.client.Search().
		Index(ContentIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{
					MultiMatch: &types.MultiMatchQuery{
						Query:  queryText,
						Fields: []string{"title^2", "text", "tags"},
					},
				}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{
						"public": {Value: true},
					},
				}},
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *contentRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*ContentES, int64, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	results := make([]*ContentES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc ContentES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		results = append(results, &doc)
	}
	return results, total, nil
}
