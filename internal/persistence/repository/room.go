package repository

import (
	"context"
	"errors"
	"time"

	"inkboard/internal/domain"
	"inkboard/internal/persistence/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const roomTTLSeconds = 86400 // rooms expire 24h after their last activity

// RoomRepository backs both the REST room surface and the relay's command log
// with a single rooms collection. One document per room holds the full command
// history; MongoDB's TTL monitor evicts rooms idle past roomTTLSeconds.
type RoomRepository struct {
	db *mongo.Database
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{
		db: db,
	}
}

func (r *RoomRepository) JoinOrCreate(ctx context.Context, roomID string) (*domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	now := time.Now().UTC()
	filter := bson.M{"roomId": roomID}
	update := bson.M{
		"$set": bson.M{"lastActivity": now},
		"$setOnInsert": bson.M{
			"roomId":    roomID,
			"createdAt": now,
			"commands":  []domain.DrawingCommand{},
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var room domain.Room
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&room); err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	return &room, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID string) (*domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	var room domain.Room
	err := collection.FindOne(ctx, bson.M{"roomId": roomID}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	return &room, nil
}

// Append upserts so that a room evicted by the TTL monitor mid-session is
// recreated instead of silently dropping commands.
func (r *RoomRepository) Append(ctx context.Context, roomID string, cmd domain.DrawingCommand) error {
	collection := r.db.Collection(db.RoomsCollection)

	now := time.Now().UTC()
	update := bson.M{
		"$push":        bson.M{"commands": cmd},
		"$set":         bson.M{"lastActivity": now},
		"$setOnInsert": bson.M{"roomId": roomID, "createdAt": now},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := collection.UpdateOne(ctx, bson.M{"roomId": roomID}, update, opts); err != nil {
		return errors.Join(domain.ErrStorageUnavailable, err)
	}

	return nil
}

func (r *RoomRepository) LoadAll(ctx context.Context, roomID string) ([]domain.DrawingCommand, error) {
	collection := r.db.Collection(db.RoomsCollection)

	opts := options.FindOne().SetProjection(bson.M{"commands": 1})

	var room domain.Room
	err := collection.FindOne(ctx, bson.M{"roomId": roomID}, opts).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []domain.DrawingCommand{}, nil
	}
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	return room.Commands, nil
}

func (r *RoomRepository) Touch(ctx context.Context, roomID string) error {
	collection := r.db.Collection(db.RoomsCollection)

	update := bson.M{"$set": bson.M{"lastActivity": time.Now().UTC()}}
	if _, err := collection.UpdateOne(ctx, bson.M{"roomId": roomID}, update); err != nil {
		return errors.Join(domain.ErrStorageUnavailable, err)
	}

	return nil
}

func (r *RoomRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.RoomsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "roomId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "lastActivity", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(roomTTLSeconds),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
