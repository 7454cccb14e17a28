package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type ReceiptGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultReceiptGenerator encodes a link to the order status page so staff
// can pin the printed QR code to the cup.
type DefaultReceiptGenerator struct {
	BaseURL string
}

func (g DefaultReceiptGenerator) Generate(orderID int) ([]byte, error) {
	data := fmt.Sprintf("%s/dashboard/orders?order=%d", g.BaseURL, orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
