package service

import (
	"context"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

type MenuRepository interface {
	ListMenuItems() ([]domain.MenuItem, error)
	CreateMenuItem(item *domain.MenuItem) error
	GetMenuItemByName(name string) (*domain.MenuItem, error)
	UpdateMenuItem(id int, patch domain.MenuItemPatch) (*domain.MenuItem, error)
	UpdateMenuItemImage(id int, imageURL string) (int64, error)
	DeleteMenuItem(id int) (int64, error)
}

type OrderRepository interface {
	ListOrders() ([]domain.Order, error)
	CreateOrder(order *domain.Order) error
	GetOrder(id int) (*domain.Order, error)
	CompleteOrder(id int) (int64, error)
	DeleteOrder(id int) (int64, error)
}

type MenuCache interface {
	Get(ctx context.Context) ([]domain.MenuItem, error)
	Set(ctx context.Context, items []domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByName(ctx context.Context, name string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, id int, patch domain.MenuItemPatch) (*domain.MenuItem, error)
	UpdateImage(ctx context.Context, id int, imageURL string) error
	Delete(ctx context.Context, id int) error
}

type OrderServiceInterface interface {
	List() ([]domain.Order, error)
	Create(ctx context.Context, cart domain.Cart) (*domain.Order, error)
	Complete(ctx context.Context, id int) (*domain.Order, error)
	Delete(id int) error
	Receipt(id int) ([]byte, error)
}
