package settingsRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type settingDoc struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a MongoDB-backed SettingsRepository.
func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{coll: db.Collection("settings")}
}

func (r *mongoSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc settingDoc
	err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (r *mongoSettingsRepo) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"value": value}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"key": key}, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoSettingsRepo) All(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []settingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		out[doc.Key] = doc.Value
	}
	return out, nil
}
