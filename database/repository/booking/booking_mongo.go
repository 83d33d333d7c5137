package bookingRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agendabot/models"
)

// bookingDoc wraps a Booking with the derived client key used for
// case-insensitive identity lookups.
type bookingDoc struct {
	models.Booking `bson:",inline"`
	ClientKey      string `bson:"client_key"`
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}

func (r *mongoBookingRepo) FindConfirmed(ctx context.Context, date, slot string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "slot": slot, "status": models.BookingStatusConfirmed}
	var doc bookingDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Booking, nil
}

func (r *mongoBookingRepo) FindConfirmedByClient(ctx context.Context, date, clientKey string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "client_key": clientKey, "status": models.BookingStatusConfirmed}
	var doc bookingDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Booking, nil
}

func (r *mongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bookingDoc{Booking: *booking, ClientKey: models.ClientKey(booking.ClientName)}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return booking.ID, nil
}

func (r *mongoBookingRepo) UpdateSlotAndContact(ctx context.Context, bookingID, newSlot, newContact string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"slot": newSlot, "contact": newContact}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) ListConfirmed(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "status": models.BookingStatusConfirmed}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "slot", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *mongoBookingRepo) ListFrom(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": date}}
	sort := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, sort)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *mongoBookingRepo) CountConfirmed(ctx context.Context, date string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"date": date, "status": models.BookingStatusConfirmed})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]models.Booking, error) {
	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, len(docs))
	for i, doc := range docs {
		if _, err := models.ParseBookingStatus(string(doc.Status)); err != nil {
			return nil, err
		}
		bookings[i] = doc.Booking
	}
	return bookings, nil
}
