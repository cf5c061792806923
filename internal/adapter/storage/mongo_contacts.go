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

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d contactDoc) toDomain() domain.ContactMessage {
	return domain.ContactMessage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *MongoAdapter) CreateContactMessage(ctx context.Context, c *domain.ContactMessage) error {
	res, err := m.contacts.InsertOne(ctx, contactDoc{
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (m *MongoAdapter) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	cur, err := m.contacts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find contact messages: %w", err)
	}

	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contact messages: %w", err)
	}

	out := make([]domain.ContactMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (m *MongoAdapter) GetContactMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	oid, err := objectID("Contact message", id)
	if err != nil {
		return nil, err
	}

	var doc contactDoc
	err = m.contacts.FindOne(ctx, idFilter(oid)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("Contact message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find contact message: %w", err)
	}

	c := doc.toDomain()
	return &c, nil
}

func (m *MongoAdapter) UpdateContactMessage(ctx context.Context, c domain.ContactMessage) error {
	oid, err := objectID("Contact message", c.ID)
	if err != nil {
		return err
	}

	res, err := m.contacts.UpdateOne(ctx, idFilter(oid), bson.M{"$set": bson.M{
		"name":      c.Name,
		"email":     c.Email,
		"message":   c.Message,
		"updatedAt": c.UpdatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}

	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("Contact message", c.ID)
	}
	return nil
}

func (m *MongoAdapter) DeleteContactMessage(ctx context.Context, id string) error {
	oid, err := objectID("Contact message", id)
	if err != nil {
		return err
	}

	res, err := m.contacts.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("Contact message", id)
	}
	return nil
}
