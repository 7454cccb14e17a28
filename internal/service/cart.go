package service

import (
	"fmt"
	"strings"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

// AggregateCart prices a cart against a catalog snapshot. Lines whose name
// no longer resolves to a menu item are skipped: a customer may have added
// something the shop deleted a moment later, and a stale line must not sink
// the rest of the order. The returned summary keeps cart order, one
// "name (x qty)" fragment per resolved line.
func AggregateCart(cart domain.Cart, snapshot []domain.MenuItem) (int64, string, []domain.CartLine) {
	prices := make(map[string]int64, len(snapshot))
	for _, item := range snapshot {
		if _, ok := prices[item.Name]; !ok {
			prices[item.Name] = item.Price
		}
	}

	var total int64
	var fragments []string
	var resolved []domain.CartLine

	for _, line := range cart.Lines {
		price, ok := prices[line.Name]
		if !ok || line.Quantity <= 0 {
			continue
		}
		total += price * int64(line.Quantity)
		fragments = append(fragments, fmt.Sprintf("%s (x%d)", line.Name, line.Quantity))
		resolved = append(resolved, line)
	}

	return total, strings.Join(fragments, ", "), resolved
}
