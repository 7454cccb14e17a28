package stats

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

type StoreInterface interface {
	RecordOrderCreated(ctx context.Context, event domain.OrderEvent) error
	RecordOrderCompleted(ctx context.Context, event domain.OrderEvent) error
}

type ReaderInterface interface {
	TopItems(ctx context.Context, limit int) ([]ItemCount, error)
	Summary(ctx context.Context, day time.Time) (*DailySummary, error)
}

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{Reader: reader, Store: store}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting sales stats consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling order event: %v", err)
			continue
		}

		c.Process(ctx, event)
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) {
	switch event.Type {
	case domain.EventOrderCreated:
		if err := c.Store.RecordOrderCreated(ctx, event); err != nil {
			log.Printf("Error recording created order %d: %v", event.OrderID, err)
		}
	case domain.EventOrderCompleted:
		if err := c.Store.RecordOrderCompleted(ctx, event); err != nil {
			log.Printf("Error recording completed order %d: %v", event.OrderID, err)
		}
	default:
		// Unknown event types are skipped so old consumers survive new producers.
	}
}

var (
	_ StoreInterface  = (*Store)(nil)
	_ ReaderInterface = (*Store)(nil)
)
