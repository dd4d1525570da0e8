package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activity_log"

type ActivityRepo interface {
	CreateActivity(ctx context.Context, activity *ActivityModel) error
	ListActivities(ctx context.Context, limit, offset int64) ([]*ActivityModel, int64, error)
}

type activityRepoImpl struct {
	col *mongo.Collection
}

func NewActivityRepo(db *mongo.Database) ActivityRepo {
	return &activityRepoImpl{
		col: db.Collection(activityCollection),
	}
}

func ensureActivityIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(activityCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (s *activityRepoImpl) CreateActivity(ctx context.Context, activity *ActivityModel) error {
	_, err := s.col.InsertOne(ctx, activity)
	return err
}

// ListActivities 按时间倒序分页
func (s *activityRepoImpl) ListActivities(ctx context.Context, limit, offset int64) ([]*ActivityModel, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*ActivityModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
