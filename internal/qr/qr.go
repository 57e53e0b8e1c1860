package qr

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// Generator encodes the order-lookup URL for a paid order into a PNG the
// kitchen can stick on the bag.
type Generator struct {
	BaseURL string
}

func (g Generator) Generate(orderID uuid.UUID) ([]byte, error) {
	data := fmt.Sprintf("%s/order?id=%s", g.BaseURL, orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
