package kafka

import (
	"context"
	"errors"
	"testing"

	"Folio/internal/pkg/es"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentES struct {
	indexed  []*es.ContentES
	versions []int64
	deleted  []string
	err      error
}

func (f *fakeContentES) EnsureIndex(context.Context) error { return nil }

func (f *fakeContentES) IndexContent(_ context.Context, doc *es.ContentES, version int64) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, doc)
	f.versions = append(f.versions, version)
	return nil
}

func (f *fakeContentES) DeleteContent(_ context.Context, kind, id string) error {
	f.deleted = append(f.deleted, es.DocID(kind, id))
	return f.err
}

func (f *fakeContentES) Search(context.Context, string, int, int) ([]*es.ContentES, int64, error) {
	return nil, 0, nil
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "folio-canal", Value: []byte(value)}
}

func TestContentHandler_IndexMedia(t *testing.T) {
	fake := &fakeContentES{}
	h := NewContentHandler(fake)

	err := h.logic(context.Background(), message(`{
		"table":"media","type":"INSERT","es":1700000000000,"isDdl":false,
		"data":[{"id":"m1","type":"text","url":"","content":"harbour at dusk","tags":"[\"travel\"]",
			"content_id":null,"sort_order":"3","classification":"personal",
			"width":"0","height":"0","created_at":"2025-03-01 10:00:00","updated_at":"2025-03-01 10:00:00"}]
	}`))
	require.NoError(t, err)
	require.Len(t, fake.indexed, 1)

	doc := fake.indexed[0]
	assert.Equal(t, "media", doc.Kind)
	assert.Equal(t, "m1", doc.ID)
	assert.Equal(t, "harbour at dusk", doc.Text)
	assert.Equal(t, []string{"travel"}, doc.Tags)
	assert.True(t, doc.Public)
	assert.Equal(t, 2025, doc.CreatedAt.Year())
	assert.Equal(t, int64(1700000000000), fake.versions[0])
}

func TestContentHandler_UnpublishedArticle(t *testing.T) {
	fake := &fakeContentES{}
	h := NewContentHandler(fake)

	err := h.logic(context.Background(), message(`{
		"table":"articles","type":"UPDATE","es":1,
		"data":[{"id":"12","title":"Draft","slug":"draft","body":"<p>hi</p>","cover_image":"",
			"published":"0","published_at":null,"tags":"[]",
			"created_at":"2025-03-01 10:00:00","updated_at":"2025-03-01 10:00:00"}]
	}`))
	require.NoError(t, err)
	require.Len(t, fake.indexed, 1)
	assert.Equal(t, "12", fake.indexed[0].ID)
	assert.Equal(t, "articles", fake.indexed[0].Kind)
	assert.False(t, fake.indexed[0].Public)
	assert.Equal(t, "hi", fake.indexed[0].Text)
}

func TestContentHandler_Delete(t *testing.T) {
	fake := &fakeContentES{}
	h := NewContentHandler(fake)

	err := h.logic(context.Background(), message(`{
		"table":"projects","type":"DELETE","es":1,
		"data":[{"id":"4"},{"id":"5"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"projects:4", "projects:5"}, fake.deleted)
}

func TestContentHandler_SkipsIrrelevant(t *testing.T) {
	fake := &fakeContentES{err: errors.New("should not be called")}
	h := NewContentHandler(fake)

	assert.NoError(t, h.logic(context.Background(), message(`not json`)))
	assert.NoError(t, h.logic(context.Background(), message(`{"table":"users","type":"INSERT","data":[{"id":"1"}]}`)))
	assert.NoError(t, h.logic(context.Background(), message(`{"table":"media","isDdl":true,"type":"ALTER"}`)))
}

func TestContentHandler_IndexErrorIsReturned(t *testing.T) {
	fake := &fakeContentES{err: errors.New("es down")}
	h := NewContentHandler(fake)

	err := h.logic(context.Background(), message(`{"table":"posts","type":"INSERT","data":[{"id":"1","published":"1"}]}`))
	assert.Error(t, err)
}
