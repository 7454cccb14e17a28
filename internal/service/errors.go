package service

import "errors"

var (
	ErrInvalidItem   = errors.New("item name and a non-negative price are required")
	ErrItemNotFound  = errors.New("menu item not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart has no orderable items")
)
