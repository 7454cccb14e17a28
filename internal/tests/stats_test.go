package tests

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/mocks"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/stats"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/storage"
)

func newTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestMenuCache(t *testing.T) {
	ctx := context.Background()
	cache := storage.NewMenuCache(newTestRedis(t), time.Minute)

	_, err := cache.Get(ctx)
	assert.Error(t, err, "empty cache should miss")

	items := catalogSnapshot()
	assert.NoError(t, cache.Set(ctx, items))

	got, err := cache.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, items[0].Name, got[0].Name)
	assert.Equal(t, items[1].Price, got[1].Price)

	assert.NoError(t, cache.Invalidate(ctx))
	_, err = cache.Get(ctx)
	assert.Error(t, err, "invalidated cache should miss")
}

func TestStatsStore(t *testing.T) {
	ctx := context.Background()
	store := stats.NewStore(newTestRedis(t))
	day := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	created := domain.OrderEvent{
		Type:       domain.EventOrderCreated,
		OrderID:    1,
		TotalPrice: 112000,
		Lines: []domain.CartLine{
			{Name: "Espresso", Quantity: 2},
			{Name: "Latte", Quantity: 1},
		},
		Timestamp: day,
	}
	assert.NoError(t, store.RecordOrderCreated(ctx, created))
	assert.NoError(t, store.RecordOrderCreated(ctx, domain.OrderEvent{
		Type:       domain.EventOrderCreated,
		OrderID:    2,
		TotalPrice: 35000,
		Lines:      []domain.CartLine{{Name: "Espresso", Quantity: 1}},
		Timestamp:  day,
	}))
	assert.NoError(t, store.RecordOrderCompleted(ctx, domain.OrderEvent{
		Type:      domain.EventOrderCompleted,
		OrderID:   1,
		Timestamp: day,
	}))

	top, err := store.TopItems(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, []stats.ItemCount{
		{Name: "Espresso", Quantity: 3},
		{Name: "Latte", Quantity: 1},
	}, top)

	summary, err := store.Summary(ctx, day)
	assert.NoError(t, err)
	assert.Equal(t, "2026-08-29", summary.Date)
	assert.Equal(t, int64(2), summary.Orders)
	assert.Equal(t, int64(1), summary.Completed)
	assert.Equal(t, int64(147000), summary.Revenue)

	// A day with no traffic reads as all zeroes, not an error.
	blank, err := store.Summary(ctx, day.AddDate(0, 0, 1))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), blank.Orders)
}

func TestConsumerProcess(t *testing.T) {
	tests := []struct {
		name       string
		event      domain.OrderEvent
		wantMethod string
	}{
		{
			name:       "order created",
			event:      domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: 1},
			wantMethod: "RecordOrderCreated",
		},
		{
			name:       "order completed",
			event:      domain.OrderEvent{Type: domain.EventOrderCompleted, OrderID: 1},
			wantMethod: "RecordOrderCompleted",
		},
		{
			name:  "unknown type is skipped",
			event: domain.OrderEvent{Type: "order_refunded", OrderID: 1},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewStatsStore(t)
			if testCase.wantMethod != "" {
				store.On(testCase.wantMethod, mock.Anything, testCase.event).Return(nil).Once()
			}

			consumer := stats.NewConsumer(nil, store)
			consumer.Process(context.Background(), testCase.event)
		})
	}
}
