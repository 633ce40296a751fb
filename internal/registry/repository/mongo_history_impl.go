package repository

import (
	"context"

	"lotadmin/internal/registry/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateHistory(ctx context.Context, rec *model.ChangeRecord) error {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.History.InsertOne(ctx, rec)
	return err
}

func (r *MongoRepository) FindHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error) {
	filter := bson.M{}
	if req.Kind != "" {
		filter["kind"] = req.Kind
	}

	limit := req.Limit
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.History.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []*model.ChangeRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
