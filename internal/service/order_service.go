package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

type OrderService struct {
	repo      OrderRepository
	menu      MenuRepository
	publisher OrderPublisher
	receipts  ReceiptGenerator
}

func NewOrderService(repo OrderRepository, menu MenuRepository, publisher OrderPublisher, receipts ReceiptGenerator) *OrderService {
	return &OrderService{
		repo:      repo,
		menu:      menu,
		publisher: publisher,
		receipts:  receipts,
	}
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.repo.ListOrders()
}

// Create freezes the cart into an order: line totals use the catalog prices
// in effect right now, and the stored summary and total never change again.
func (s *OrderService) Create(ctx context.Context, cart domain.Cart) (*domain.Order, error) {
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	snapshot, err := s.menu.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	total, summary, resolved := AggregateCart(cart, snapshot)
	if len(resolved) == 0 {
		// Every line referenced a deleted item.
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		Items:      summary,
		TotalPrice: total,
		Status:     domain.StatusPending,
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderCreated,
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
		Lines:      resolved,
		Timestamp:  time.Now(),
	})

	return order, nil
}

// Complete is a one-way transition. Completing an already completed order
// rewrites the same status and is not an error.
func (s *OrderService) Complete(ctx context.Context, id int) (*domain.Order, error) {
	rows, err := s.repo.CompleteOrder(id)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	if rows == 0 {
		return nil, ErrOrderNotFound
	}

	order, err := s.repo.GetOrder(id)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderCompleted,
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
		Timestamp:  time.Now(),
	})

	return order, nil
}

func (s *OrderService) Delete(id int) error {
	rows, err := s.repo.DeleteOrder(id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) Receipt(id int) ([]byte, error) {
	_, err := s.repo.GetOrder(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return s.receipts.Generate(id)
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
