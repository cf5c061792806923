package messaging

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rl1809/cafe/internal/core/domain"
)

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		event domain.OrderEvent
		want  string
	}{
		{domain.OrderEvent{Type: domain.OrderEventStatusChanged}, "order.status_changed"},
		{domain.OrderEvent{Type: domain.OrderEventDeleted}, "order.deleted"},
	}

	for _, tt := range tests {
		if got := routingKey(tt.event); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	err := p.PublishOrderEvent(context.Background(), domain.OrderEvent{
		Type:       domain.OrderEventStatusChanged,
		OrderID:    "o1",
		Status:     domain.OrderStatusReady,
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("PublishOrderEvent failed: %v", err)
	}

	entries := logs.FilterField(zap.String("order_id", "o1")).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["routing_key"] != "order.status_changed" {
		t.Errorf("unexpected fields: %v", entries[0].ContextMap())
	}
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		t.Skip("AMQP_URL not set")
	}

	exchange := "order_events_test"
	p, err := NewRabbitMQPublisher(url, exchange, zap.NewNop())
	if err != nil {
		t.Skipf("RabbitMQ not available: %v", err)
	}
	defer p.Close()

	conn, err := amqp.Dial(url)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("channel failed: %v", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare failed: %v", err)
	}
	if err := ch.QueueBind(q.Name, "order.*", exchange, false, nil); err != nil {
		t.Fatalf("queue bind failed: %v", err)
	}

	err = p.PublishOrderEvent(context.Background(), domain.OrderEvent{
		Type:       domain.OrderEventDeleted,
		OrderID:    "o2",
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("PublishOrderEvent failed: %v", err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	select {
	case d := <-deliveries:
		var msg orderEventMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if d.RoutingKey != "order.deleted" || msg.OrderID != "o2" {
			t.Errorf("unexpected delivery: key=%s body=%s", d.RoutingKey, d.Body)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
