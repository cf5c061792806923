package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rl1809/cafe/internal/core/domain"
)

type reservationDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	PartySize     int                `bson:"partySize"`
	ContactNumber string             `bson:"contactNumber"`
	Email         string             `bson:"email"`
	Date          time.Time          `bson:"date"`
	Time          string             `bson:"time"`
	Table         string             `bson:"table,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func newReservationDoc(r domain.Reservation) reservationDoc {
	return reservationDoc{
		Name:          r.Name,
		PartySize:     r.PartySize,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		Date:          r.Date.UTC(),
		Time:          r.Time,
		Table:         r.Table,
		Notes:         r.Notes,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func (d reservationDoc) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		PartySize:     d.PartySize,
		ContactNumber: d.ContactNumber,
		Email:         d.Email,
		Date:          d.Date.UTC(),
		Time:          d.Time,
		Table:         d.Table,
		Notes:         d.Notes,
		Status:        domain.ReservationStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

func (m *MongoAdapter) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	res, err := m.reservations.InsertOne(ctx, newReservationDoc(*r))
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	r.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (m *MongoAdapter) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	sort := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := m.reservations.Find(ctx, bson.M{}, sort)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}

	var docs []reservationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]domain.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (m *MongoAdapter) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := objectID("Reservation", id)
	if err != nil {
		return nil, err
	}

	var doc reservationDoc
	err = m.reservations.FindOne(ctx, idFilter(oid)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("Reservation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}

	r := doc.toDomain()
	return &r, nil
}

func (m *MongoAdapter) UpdateReservation(ctx context.Context, r domain.Reservation) error {
	oid, err := objectID("Reservation", r.ID)
	if err != nil {
		return err
	}

	doc := newReservationDoc(r)
	res, err := m.reservations.UpdateOne(ctx, idFilter(oid), bson.M{"$set": bson.M{
		"name":          doc.Name,
		"partySize":     doc.PartySize,
		"contactNumber": doc.ContactNumber,
		"email":         doc.Email,
		"date":          doc.Date,
		"time":          doc.Time,
		"table":         doc.Table,
		"notes":         doc.Notes,
		"status":        doc.Status,
	}})
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("Reservation", r.ID)
	}
	return nil
}

func (m *MongoAdapter) DeleteReservation(ctx context.Context, id string) error {
	oid, err := objectID("Reservation", id)
	if err != nil {
		return err
	}

	res, err := m.reservations.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("Reservation", id)
	}
	return nil
}
