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

type lineItemDoc struct {
	MenuItem primitive.ObjectID   `bson:"menuItem"`
	Name     string               `bson:"name"`
	Price    primitive.Decimal128 `bson:"price"`
	Quantity int                  `bson:"quantity"`
}

type orderDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Name            string               `bson:"name"`
	ContactNumber   string               `bson:"contactNumber"`
	Email           string               `bson:"email"`
	DeliveryMethod  string               `bson:"deliveryMethod"`
	TableNumber     int                  `bson:"tableNumber,omitempty"`
	DeliveryAddress string               `bson:"deliveryAddress,omitempty"`
	Order           []lineItemDoc        `bson:"order"`
	TotalAmount     primitive.Decimal128 `bson:"totalAmount"`
	Status          string               `bson:"status"`
	CreatedAt       time.Time            `bson:"createdAt"`
}

func newOrderDoc(o domain.Order) (orderDoc, error) {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return orderDoc{}, err
	}

	lines := make([]lineItemDoc, 0, len(o.Items))
	for _, li := range o.Items {
		ref, err := primitive.ObjectIDFromHex(li.MenuItemID)
		if err != nil {
			return orderDoc{}, fmt.Errorf("menu item id %q: %w", li.MenuItemID, err)
		}
		price, err := toDecimal128(li.Price)
		if err != nil {
			return orderDoc{}, err
		}
		lines = append(lines, lineItemDoc{MenuItem: ref, Name: li.Name, Price: price, Quantity: li.Quantity})
	}

	doc := orderDoc{
		Name:           o.CustomerName,
		ContactNumber:  o.ContactNumber,
		Email:          o.Email,
		DeliveryMethod: string(o.DeliveryMethod),
		Order:          lines,
		TotalAmount:    total,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.UTC(),
	}
	if o.DeliveryMethod == domain.DeliveryMethodDineIn {
		doc.TableNumber = o.TableNumber
	} else {
		doc.DeliveryAddress = o.DeliveryAddress
	}
	return doc, nil
}

func (d orderDoc) toDomain() (domain.Order, error) {
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.LineItem, 0, len(d.Order))
	for _, l := range d.Order {
		price, err := fromDecimal128(l.Price)
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, domain.LineItem{
			MenuItemID: l.MenuItem.Hex(),
			Name:       l.Name,
			Price:      price,
			Quantity:   l.Quantity,
		})
	}

	return domain.Order{
		ID:              d.ID.Hex(),
		CustomerName:    d.Name,
		ContactNumber:   d.ContactNumber,
		Email:           d.Email,
		DeliveryMethod:  domain.DeliveryMethod(d.DeliveryMethod),
		TableNumber:     d.TableNumber,
		DeliveryAddress: d.DeliveryAddress,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderStatus(d.Status),
		CreatedAt:       d.CreatedAt,
	}, nil
}

func (m *MongoAdapter) CreateOrder(ctx context.Context, order *domain.Order) error {
	doc, err := newOrderDoc(*order)
	if err != nil {
		return err
	}

	res, err := m.orders.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	order.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (m *MongoAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	cur, err := m.orders.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *MongoAdapter) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := objectID("Order", id)
	if err != nil {
		return nil, err
	}

	var doc orderDoc
	err = m.orders.FindOneAndUpdate(ctx, idFilter(oid),
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoAdapter) DeleteOrder(ctx context.Context, id string) error {
	oid, err := objectID("Order", id)
	if err != nil {
		return err
	}

	res, err := m.orders.DeleteOne(ctx, idFilter(oid))
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("Order", id)
	}
	return nil
}
