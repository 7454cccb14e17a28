package tests

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/mocks"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/service"
)

func TestMenuService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   *domain.MenuItem
		wantErr error
	}{
		{
			name:  "valid item",
			input: &domain.MenuItem{Name: "Espresso", Price: 35000},
		},
		{
			name:    "empty name",
			input:   &domain.MenuItem{Name: "", Price: 35000},
			wantErr: service.ErrInvalidItem,
		},
		{
			name:    "negative price",
			input:   &domain.MenuItem{Name: "Espresso", Price: -1},
			wantErr: service.ErrInvalidItem,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewMenuRepository(t)
			mockCache := mocks.NewMenuCache(t)
			svc := service.NewMenuService(mockRepo, mockCache)

			if testCase.wantErr == nil {
				mockRepo.On("CreateMenuItem", testCase.input).Return(nil).Once()
				mockCache.On("Invalidate", mock.Anything).Return(nil).Once()
			}

			err := svc.Create(context.Background(), testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMenuService_ListUsesCache(t *testing.T) {
	cached := []domain.MenuItem{{ID: 1, Name: "Latte", Price: 42000}}

	mockRepo := mocks.NewMenuRepository(t)
	mockCache := mocks.NewMenuCache(t)
	mockCache.On("Get", mock.Anything).Return(cached, nil).Once()

	svc := service.NewMenuService(mockRepo, mockCache)
	items, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, items)
	mockRepo.AssertNotCalled(t, "ListMenuItems")
}

func TestMenuService_ListCacheMiss(t *testing.T) {
	stored := []domain.MenuItem{{ID: 1, Name: "Espresso", Price: 35000}}

	mockRepo := mocks.NewMenuRepository(t)
	mockCache := mocks.NewMenuCache(t)
	mockCache.On("Get", mock.Anything).Return(nil, assert.AnError).Once()
	mockRepo.On("ListMenuItems").Return(stored, nil).Once()
	mockCache.On("Set", mock.Anything, stored).Return(nil).Once()

	svc := service.NewMenuService(mockRepo, mockCache)
	items, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, stored, items)
}

func TestMenuService_GetByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockRepo.On("GetMenuItemByName", "Espresso").
			Return(&domain.MenuItem{ID: 1, Name: "Espresso", Price: 35000}, nil).Once()

		svc := service.NewMenuService(mockRepo, nil)
		item, err := svc.GetByName(context.Background(), "Espresso")

		assert.NoError(t, err)
		assert.Equal(t, 1, item.ID)
	})

	t.Run("unknown name", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockRepo.On("GetMenuItemByName", "Bac Xiu").Return(nil, sql.ErrNoRows).Once()

		svc := service.NewMenuService(mockRepo, nil)
		_, err := svc.GetByName(context.Background(), "Bac Xiu")

		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})
}

func TestMenuService_Update(t *testing.T) {
	newPrice := int64(39000)

	t.Run("price patch keeps name", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockCache := mocks.NewMenuCache(t)
		patch := domain.MenuItemPatch{Price: &newPrice}
		updated := &domain.MenuItem{ID: 1, Name: "Espresso", Price: newPrice}

		mockRepo.On("UpdateMenuItem", 1, patch).Return(updated, nil).Once()
		mockCache.On("Invalidate", mock.Anything).Return(nil).Once()

		svc := service.NewMenuService(mockRepo, mockCache)
		item, err := svc.Update(context.Background(), 1, patch)

		assert.NoError(t, err)
		assert.Equal(t, "Espresso", item.Name)
		assert.Equal(t, newPrice, item.Price)
	})

	t.Run("missing id", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockRepo.On("UpdateMenuItem", 99, mock.Anything).Return(nil, sql.ErrNoRows).Once()

		svc := service.NewMenuService(mockRepo, nil)
		_, err := svc.Update(context.Background(), 99, domain.MenuItemPatch{Price: &newPrice})

		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := ""
		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil)
		_, err := svc.Update(context.Background(), 1, domain.MenuItemPatch{Name: &empty})

		assert.ErrorIs(t, err, service.ErrInvalidItem)
	})
}

func TestMenuService_Delete(t *testing.T) {
	t.Run("deletes and invalidates", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockCache := mocks.NewMenuCache(t)
		mockRepo.On("DeleteMenuItem", 1).Return(int64(1), nil).Once()
		mockCache.On("Invalidate", mock.Anything).Return(nil).Once()

		svc := service.NewMenuService(mockRepo, mockCache)
		assert.NoError(t, svc.Delete(context.Background(), 1))
	})

	t.Run("missing id", func(t *testing.T) {
		mockRepo := mocks.NewMenuRepository(t)
		mockRepo.On("DeleteMenuItem", 99).Return(int64(0), nil).Once()

		svc := service.NewMenuService(mockRepo, nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), 99), service.ErrItemNotFound)
	})
}

func catalogSnapshot() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, Name: "Espresso", Price: 35000},
		{ID: 2, Name: "Latte", Price: 42000},
	}
}

func TestOrderService_Create(t *testing.T) {
	t.Run("freezes total and summary", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		mockMenu := mocks.NewMenuRepository(t)
		mockPublisher := mocks.NewOrderPublisher(t)

		mockMenu.On("ListMenuItems").Return(catalogSnapshot(), nil).Once()
		mockOrders.On("CreateOrder", mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) {
				order := args.Get(0).(*domain.Order)
				order.ID = 7
			}).
			Return(nil).Once()
		mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(event domain.OrderEvent) bool {
			return event.Type == domain.EventOrderCreated && event.OrderID == 7
		})).Return(nil).Once()

		svc := service.NewOrderService(mockOrders, mockMenu, mockPublisher, nil)

		cart := domain.Cart{}
		cart.Add("Espresso")
		cart.Add("Espresso")
		cart.Add("Latte")

		order, err := svc.Create(context.Background(), cart)

		assert.NoError(t, err)
		assert.Equal(t, 7, order.ID)
		assert.Equal(t, int64(2*35000+42000), order.TotalPrice)
		assert.Equal(t, "Espresso (x2), Latte (x1)", order.Items)
		assert.Equal(t, domain.StatusPending, order.Status)
	})

	t.Run("skips deleted items", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		mockMenu := mocks.NewMenuRepository(t)

		mockMenu.On("ListMenuItems").Return(catalogSnapshot(), nil).Once()
		mockOrders.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

		svc := service.NewOrderService(mockOrders, mockMenu, nil, nil)

		cart := domain.Cart{}
		cart.Add("Espresso")
		cart.Add("Bac Xiu") // removed from the catalog after it was carted

		order, err := svc.Create(context.Background(), cart)

		assert.NoError(t, err)
		assert.Equal(t, int64(35000), order.TotalPrice)
		assert.Equal(t, "Espresso (x1)", order.Items)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewMenuRepository(t), nil, nil)
		_, err := svc.Create(context.Background(), domain.Cart{})
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("cart of only deleted items", func(t *testing.T) {
		mockMenu := mocks.NewMenuRepository(t)
		mockMenu.On("ListMenuItems").Return(catalogSnapshot(), nil).Once()

		svc := service.NewOrderService(mocks.NewOrderRepository(t), mockMenu, nil, nil)

		cart := domain.Cart{}
		cart.Add("Bac Xiu")

		_, err := svc.Create(context.Background(), cart)
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})
}

func TestOrderService_Complete(t *testing.T) {
	t.Run("marks completed", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		completed := &domain.Order{ID: 7, Status: domain.StatusCompleted}

		mockOrders.On("CompleteOrder", 7).Return(int64(1), nil).Once()
		mockOrders.On("GetOrder", 7).Return(completed, nil).Once()

		svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, nil)
		order, err := svc.Complete(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})

	t.Run("second completion is a no-op success", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		completed := &domain.Order{ID: 7, Status: domain.StatusCompleted}

		mockOrders.On("CompleteOrder", 7).Return(int64(1), nil).Twice()
		mockOrders.On("GetOrder", 7).Return(completed, nil).Twice()

		svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, nil)

		_, err := svc.Complete(context.Background(), 7)
		assert.NoError(t, err)
		_, err = svc.Complete(context.Background(), 7)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		mockOrders.On("CompleteOrder", 99).Return(int64(0), nil).Once()

		svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, nil)
		_, err := svc.Complete(context.Background(), 99)

		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	mockOrders := mocks.NewOrderRepository(t)
	mockOrders.On("DeleteOrder", 7).Return(int64(1), nil).Once()
	mockOrders.On("DeleteOrder", 99).Return(int64(0), nil).Once()

	svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, nil)

	assert.NoError(t, svc.Delete(7))
	assert.ErrorIs(t, svc.Delete(99), service.ErrOrderNotFound)
}

func TestOrderService_Receipt(t *testing.T) {
	t.Run("missing order", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		mockOrders.On("GetOrder", 99).Return(nil, sql.ErrNoRows).Once()

		svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, mocks.NewReceiptGenerator(t))
		_, err := svc.Receipt(99)

		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("delegates to generator", func(t *testing.T) {
		mockOrders := mocks.NewOrderRepository(t)
		mockReceipts := mocks.NewReceiptGenerator(t)
		mockOrders.On("GetOrder", 7).Return(&domain.Order{ID: 7}, nil).Once()
		mockReceipts.On("Generate", 7).Return([]byte("png"), nil).Once()

		svc := service.NewOrderService(mockOrders, mocks.NewMenuRepository(t), nil, mockReceipts)
		payload, err := svc.Receipt(7)

		assert.NoError(t, err)
		assert.Equal(t, []byte("png"), payload)
	})
}

func TestAggregateCart(t *testing.T) {
	cart := domain.Cart{}
	cart.Add("Latte")
	cart.Add("Espresso")
	cart.Add("Latte")

	total, summary, resolved := service.AggregateCart(cart, catalogSnapshot())

	assert.Equal(t, int64(2*42000+35000), total)
	assert.Equal(t, "Latte (x2), Espresso (x1)", summary)
	assert.Len(t, resolved, 2)
}

func TestDefaultReceiptGenerator(t *testing.T) {
	gen := service.DefaultReceiptGenerator{BaseURL: "http://localhost:8080"}
	payload, err := gen.Generate(123)

	assert.NoError(t, err)
	assert.NotEmpty(t, payload)
}
