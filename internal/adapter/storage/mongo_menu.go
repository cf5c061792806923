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

type menuDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    string               `bson:"category"`
	Image       string               `bson:"image,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

func newMenuDoc(item domain.MenuItem) (menuDoc, error) {
	price, err := toDecimal128(item.Price)
	if err != nil {
		return menuDoc{}, err
	}
	return menuDoc{
		Name:        item.Name,
		Description: item.Description,
		Price:       price,
		Category:    string(item.Category),
		Image:       item.Image,
		CreatedAt:   item.CreatedAt.UTC(),
	}, nil
}

func (d menuDoc) toDomain() (domain.MenuItem, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return domain.MenuItem{}, err
	}
	return domain.MenuItem{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    domain.Category(d.Category),
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func duplicateMenuName(name string) error {
	return domain.NewValidationError("name", fmt.Sprintf("Menu item %q already exists.", name))
}

func (m *MongoAdapter) findMenuItems(ctx context.Context, filter any, opts ...*options.FindOptions) ([]domain.MenuItem, error) {
	cur, err := m.menus.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}

	var docs []menuDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(docs))
	for _, d := range docs {
		it, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (m *MongoAdapter) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	sort := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return m.findMenuItems(ctx, bson.M{}, sort)
}

func (m *MongoAdapter) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := objectID("Menu item", id)
	if err != nil {
		return nil, err
	}

	var doc menuDoc
	err = m.menus.FindOne(ctx, idFilter(oid)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("Menu item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}

	item, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *MongoAdapter) GetMenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	out := make(map[string]domain.MenuItem, len(ids))

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return out, nil
	}

	items, err := m.findMenuItems(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (m *MongoAdapter) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	doc, err := newMenuDoc(*item)
	if err != nil {
		return err
	}

	res, err := m.menus.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return duplicateMenuName(item.Name)
	}
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}

	item.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (m *MongoAdapter) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	oid, err := objectID("Menu item", item.ID)
	if err != nil {
		return err
	}

	price, err := toDecimal128(item.Price)
	if err != nil {
		return err
	}

	res, err := m.menus.UpdateOne(ctx, idFilter(oid), bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       price,
		"category":    string(item.Category),
		"image":       item.Image,
	}})
	if mongo.IsDuplicateKeyError(err) {
		return duplicateMenuName(item.Name)
	}
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}

	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("Menu item", item.ID)
	}
	return nil
}

func (m *MongoAdapter) DeleteMenuItem(ctx context.Context, id string) error {
	oid, err := objectID("Menu item", id)
	if err != nil {
		return err
	}

	res, err := m.menus.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("Menu item", id)
	}
	return nil
}
