package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/convoai/convo-be/types"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, msg *types.Message) error
	ListMessages(ctx context.Context, limit int64) ([]*types.Message, error)
}

type messageRepo struct {
	messages *mongo.Collection
	counters *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{
		messages: db.Collection("messages"),
		counters: db.Collection("counters"),
	}
}

func (r *messageRepo) CreateMessage(ctx context.Context, msg *types.Message) error {
	id, err := nextSequence(ctx, r.counters, "messages")
	if err != nil {
		return err
	}
	msg.ID = id
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}
	_, err = r.messages.InsertOne(ctx, msg)
	return err
}

func (r *messageRepo) ListMessages(ctx context.Context, limit int64) ([]*types.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.messages.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*types.Message
	for cursor.Next(ctx) {
		var msg types.Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, cursor.Err()
}
