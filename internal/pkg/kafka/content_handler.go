package kafka

import (
	"context"
	log "log/slog"

	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/es"

	"github.com/IBM/sarama"
)

// ContentHandler 根据 binlog 同步检索索引
type ContentHandler struct {
	contentES es.ContentRepo
}

func NewContentHandler(contentES es.ContentRepo) *ContentHandler {
	return &ContentHandler{contentES: contentES}
}

func (s *ContentHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("content consumer setup")
	return nil
}

func (s *ContentHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("content consumer cleanup")
	return nil
}

func (s *ContentHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-content consume claim")
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-content consume claim end")
	return nil
}

// logic 无关的表与 DDL 直接跳过，只有索引写入失败才返回错误触发重试
func (s *ContentHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg := ToCanalMessage(msg)
	if canalMsg == nil || canalMsg.IsDDL || len(canalMsg.Data) == 0 {
		return nil
	}

	switch canalMsg.Table {
	case es.KindMedia, consts.ContentKindArticles, consts.ContentKindProjects, consts.ContentKindPosts:
	default:
		return nil
	}

	for _, data := range canalMsg.Data {
		row := canalRow(data)
		id := row.str("id")
		if id == "" {
			continue
		}

		switch canalMsg.Type {
		case canalDelete:
			if err := s.contentES.DeleteContent(ctx, canalMsg.Table, id); err != nil {
				return err
			}
		case canalInsert, canalUpdate:
			var doc *es.ContentES
			if canalMsg.Table == es.KindMedia {
				doc = es.FromMedia(row.toMedia())
			} else {
				doc = es.FromContent(canalMsg.Table, row.toContentBase())
			}
			if err := s.contentES.IndexContent(ctx, doc, canalMsg.ES); err != nil {
				return err
			}
		}
	}
	return nil
}
