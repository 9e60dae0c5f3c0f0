package repository

import (
	"context"
	"time"

	"inkboard/internal/domain"
	"inkboard/internal/persistence/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roomActivityLogRepository struct {
	db *mongo.Database
}

func NewRoomActivityLogRepository(db *mongo.Database) domain.RoomActivityRepository {
	return &roomActivityLogRepository{
		db: db,
	}
}

func (r *roomActivityLogRepository) Log(ctx context.Context, entry *domain.RoomActivityLog) error {
	collection := r.db.Collection(db.RoomActivityLogsCollection)

	_, err := collection.InsertOne(ctx, entry)
	return err
}

func (r *roomActivityLogRepository) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.RoomActivityLog, error) {
	collection := r.db.Collection(db.RoomActivityLogsCollection)

	filter := bson.M{"room_id": roomID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.RoomActivityLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *roomActivityLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	collection := r.db.Collection(db.RoomActivityLogsCollection)

	filter := bson.M{
		"timestamp": bson.M{
			"$lt": before,
		},
	}

	_, err := collection.DeleteMany(ctx, filter)
	return err
}

func (r *roomActivityLogRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.RoomActivityLogsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days TTL
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
