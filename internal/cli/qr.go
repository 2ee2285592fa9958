package cli

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/cavworks/cav-cli/internal/address"
)

// PrintAddressQR renders the beneficiary address as a terminal QR code so it
// can be scanned instead of copied by hand.
func PrintAddressQR(addr address.Address) error {
	qr, err := qrcode.New(addr.String(), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	fmt.Printf("Beneficiary address: %s\n", addr)
	fmt.Println(qr.ToSmallString(false))
	return nil
}
