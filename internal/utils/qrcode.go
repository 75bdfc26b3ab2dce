package utils

import (
	"bytes"
	"fmt"

	"github.com/yeqown/go-qrcode"
)

// VoucherQR renders the reservation voucher payload as a QR code image
// and returns the encoded bytes.
func VoucherQR(payload string) ([]byte, error) {
	qrc, err := qrcode.New(payload)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("qr render: %w", err)
	}
	return buf.Bytes(), nil
}
