package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

const soldKey = "stats:items:sold"

// ItemCount is one row of the sold-items leaderboard.
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type DailySummary struct {
	Date      string `json:"date"`
	Orders    int64  `json:"orders"`
	Completed int64  `json:"completed"`
	Revenue   int64  `json:"revenue"`
}

// Store keeps running sales counters in Redis: an all-time sold-quantity
// leaderboard plus per-day order/revenue counters.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func dayKey(prefix string, day time.Time) string {
	return fmt.Sprintf("stats:%s:%s", prefix, day.Format("2006-01-02"))
}

func (s *Store) RecordOrderCreated(ctx context.Context, event domain.OrderEvent) error {
	day := event.Timestamp
	if day.IsZero() {
		day = time.Now()
	}

	for _, line := range event.Lines {
		if err := s.rdb.ZIncrBy(ctx, soldKey, float64(line.Quantity), line.Name).Err(); err != nil {
			return err
		}
	}

	ordersKey := dayKey("orders", day)
	revenueKey := dayKey("revenue", day)
	if err := s.rdb.Incr(ctx, ordersKey).Err(); err != nil {
		return err
	}
	if err := s.rdb.IncrBy(ctx, revenueKey, event.TotalPrice).Err(); err != nil {
		return err
	}
	s.rdb.Expire(ctx, ordersKey, 30*24*time.Hour)
	s.rdb.Expire(ctx, revenueKey, 30*24*time.Hour)
	return nil
}

func (s *Store) RecordOrderCompleted(ctx context.Context, event domain.OrderEvent) error {
	day := event.Timestamp
	if day.IsZero() {
		day = time.Now()
	}
	completedKey := dayKey("completed", day)
	if err := s.rdb.Incr(ctx, completedKey).Err(); err != nil {
		return err
	}
	s.rdb.Expire(ctx, completedKey, 30*24*time.Hour)
	return nil
}

func (s *Store) TopItems(ctx context.Context, limit int) ([]ItemCount, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.rdb.ZRevRangeWithScores(ctx, soldKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]ItemCount, 0, len(entries))
	for _, entry := range entries {
		name, ok := entry.Member.(string)
		if !ok {
			continue
		}
		items = append(items, ItemCount{Name: name, Quantity: int64(entry.Score)})
	}
	return items, nil
}

func (s *Store) Summary(ctx context.Context, day time.Time) (*DailySummary, error) {
	summary := &DailySummary{Date: day.Format("2006-01-02")}

	for key, target := range map[string]*int64{
		dayKey("orders", day):    &summary.Orders,
		dayKey("completed", day): &summary.Completed,
		dayKey("revenue", day):   &summary.Revenue,
	} {
		raw, err := s.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		*target = value
	}
	return summary, nil
}
