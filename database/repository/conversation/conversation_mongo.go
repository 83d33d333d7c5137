package conversationRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agendabot/models"
)

type conversationDoc struct {
	models.Conversation `bson:",inline"`
	ClientKey           string `bson:"client_key"`
}

type messageDoc struct {
	models.Message `bson:",inline"`
	ClientKey      string `bson:"client_key"`
}

type mongoConversationRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoConversationRepo constructs a MongoDB-backed ConversationRepository.
func NewMongoConversationRepo(db *mongo.Database) ConversationRepository {
	return &mongoConversationRepo{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

func (r *mongoConversationRepo) ActiveConversation(ctx context.Context, clientName string) (*models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"client_key": models.ClientKey(clientName), "state": models.ConversationActive}
	var doc conversationDoc
	err := r.conversations.FindOne(ctx, filter).Decode(&doc)
	if err == nil {
		return &doc.Conversation, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	conv := models.Conversation{
		ID:           uuid.New().String(),
		ClientName:   clientName,
		State:        models.ConversationActive,
		LastActivity: time.Now(),
	}
	doc = conversationDoc{Conversation: conv, ClientKey: models.ClientKey(clientName)}
	if _, err := r.conversations.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *mongoConversationRepo) AppendMessage(ctx context.Context, clientName, content string, isAgent bool) error {
	conv, err := r.ActiveConversation(ctx, clientName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	msg := messageDoc{
		Message: models.Message{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			ClientName:     clientName,
			IsAgent:        isAgent,
			Content:        content,
			Timestamp:      now,
		},
		ClientKey: models.ClientKey(clientName),
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"last_activity": now}}
	_, err = r.conversations.UpdateOne(ctx, bson.M{"id": conv.ID}, update)
	return err
}

func (r *mongoConversationRepo) History(ctx context.Context, clientName string, limit int) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.messages.Find(ctx, bson.M{"client_key": models.ClientKey(clientName)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	// Newest-first from the store, chronological for the caller.
	msgs := make([]models.Message, len(docs))
	for i, doc := range docs {
		msgs[len(docs)-1-i] = doc.Message
	}
	return msgs, nil
}

func (r *mongoConversationRepo) MarkBookingConfirmed(ctx context.Context, clientName string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"client_key": models.ClientKey(clientName), "state": models.ConversationActive}
	update := bson.M{"$set": bson.M{"state": models.ConversationClosed, "booking_confirmed": true}}
	_, err := r.conversations.UpdateOne(ctx, filter, update)
	return err
}

func (r *mongoConversationRepo) HasConfirmedBooking(ctx context.Context, clientName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"client_key": models.ClientKey(clientName), "state": models.ConversationActive}
	var doc conversationDoc
	err := r.conversations.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.BookingConfirmed, nil
}

func (r *mongoConversationRepo) ListRecent(ctx context.Context, limit int) ([]models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "last_activity", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.conversations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []conversationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	convs := make([]models.Conversation, len(docs))
	for i, doc := range docs {
		convs[i] = doc.Conversation
	}
	return convs, nil
}

func (r *mongoConversationRepo) CountActive(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.conversations.CountDocuments(ctx, bson.M{"state": models.ConversationActive})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *mongoConversationRepo) CountMessagesSince(ctx context.Context, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.messages.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
