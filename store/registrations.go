package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/felixdarko/eventplanner-api/models"
	"github.com/felixdarko/eventplanner-api/utils"
)

// RegistrationLedger persists event registrations. Insert assigns the
// record id, ticket id, timestamp and status; concurrent inserts must
// receive distinct ticket ids.
type RegistrationLedger interface {
	Insert(ctx context.Context, reg *models.Registration) error
	ListByUser(ctx context.Context, userID string) ([]models.Registration, error)
	FindByTicketID(ctx context.Context, ticketID string) (*models.Registration, error)
}

// MongoRegistrationLedger backs the ledger with two collections:
// registrations for the records and counters for the per-year ticket
// sequence.
type MongoRegistrationLedger struct {
	col      *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

// NewMongoRegistrationLedger wraps the registrations and counters
// collections.
func NewMongoRegistrationLedger(db *mongo.Database) *MongoRegistrationLedger {
	return &MongoRegistrationLedger{
		col:      db.Collection("registrations"),
		counters: db.Collection("counters"),
		now:      time.Now,
	}
}

// EnsureIndexes creates the unique ticket index and the user lookup index.
func (l *MongoRegistrationLedger) EnsureIndexes(ctx context.Context) error {
	_, err := l.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticket_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	})
	return err
}

// nextTicketSeq atomically increments and returns the ticket sequence for
// the given year. The counter document is created on first use, so the
// first ticket of a year is number 1.
func (l *MongoRegistrationLedger) nextTicketSeq(ctx context.Context, year int) (int64, error) {
	after := options.After
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := l.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": fmt.Sprintf("tickets-%d", year)},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// Insert stores a new registration. The ticket id comes from the atomic
// per-year counter, so simultaneous registrations never collide.
func (l *MongoRegistrationLedger) Insert(ctx context.Context, reg *models.Registration) error {
	now := l.now().UTC()
	seq, err := l.nextTicketSeq(ctx, now.Year())
	if err != nil {
		return err
	}

	reg.ID = uuid.NewString()
	reg.TicketID = utils.FormatTicketID(now.Year(), seq)
	reg.RegistrationDate = now
	reg.Status = models.StatusConfirmed

	_, err = l.col.InsertOne(ctx, reg)
	return err
}

// ListByUser returns all registrations for the user in insertion order.
func (l *MongoRegistrationLedger) ListByUser(ctx context.Context, userID string) ([]models.Registration, error) {
	cursor, err := l.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "registration_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	regs := []models.Registration{}
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (l *MongoRegistrationLedger) FindByTicketID(ctx context.Context, ticketID string) (*models.Registration, error) {
	var reg models.Registration
	err := l.col.FindOne(ctx, bson.M{"ticket_id": ticketID}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
