package domain

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type MenuItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItemPatch carries a partial update; nil fields keep their stored value.
type MenuItemPatch struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price"`
}

// Order is a frozen snapshot of a submitted cart. Items and TotalPrice are
// fixed at creation time and never re-derived from the catalog.
type Order struct {
	ID         int       `json:"id"`
	Items      string    `json:"items"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// CartLine is one entry of a session cart: an item name and how many the
// customer asked for. Carts keep lines in the order they were first added.
type CartLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the quantity for name, appending a new line on first add.
func (c *Cart) Add(name string) {
	for i := range c.Lines {
		if c.Lines[i].Name == name {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Name: name, Quantity: 1})
}

// Remove drops the line for name entirely, regardless of quantity.
func (c *Cart) Remove(name string) {
	for i := range c.Lines {
		if c.Lines[i].Name == name {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// OrderEvent is published to Kafka whenever an order is created or completed.
type OrderEvent struct {
	Type       string     `json:"type"`
	OrderID    int        `json:"order_id"`
	TotalPrice int64      `json:"total_price"`
	Lines      []CartLine `json:"lines,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

const (
	EventOrderCreated   = "order_created"
	EventOrderCompleted = "order_completed"
)
