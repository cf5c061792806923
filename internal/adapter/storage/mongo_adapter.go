package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rl1809/cafe/internal/core/domain"
)

const (
	menuCollection        = "menus"
	orderCollection       = "orders"
	reservationCollection = "reservations"
	contactCollection     = "contacts"
)

// MongoAdapter implements the menu, order, reservation and contact
// repositories on a single MongoDB database.
type MongoAdapter struct {
	menus        *mongo.Collection
	orders       *mongo.Collection
	reservations *mongo.Collection
	contacts     *mongo.Collection
}

func NewMongoClient(ctx context.Context, uri string, maxPoolSize uint64) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMaxPoolSize(maxPoolSize))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{
		menus:        db.Collection(menuCollection),
		orders:       db.Collection(orderCollection),
		reservations: db.Collection(reservationCollection),
		contacts:     db.Collection(contactCollection),
	}
}

// EnsureIndexes creates the unique menu name index and the sort indexes.
func (m *MongoAdapter) EnsureIndexes(ctx context.Context) error {
	if _, err := m.menus.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create menu name index: %w", err)
	}

	if _, err := m.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create order index: %w", err)
	}

	if _, err := m.reservations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create reservation index: %w", err)
	}

	return nil
}

// objectID parses a hex id. A malformed id cannot name a stored document,
// so it is reported as not found.
func objectID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewNotFoundError(resource, id)
	}
	return oid, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convert %s to decimal128: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert decimal128 %s: %w", v, err)
	}
	return d, nil
}

func idFilter(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid}
}
