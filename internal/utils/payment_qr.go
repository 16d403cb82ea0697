package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// GeneratePaymentQR encode l'URL de checkout en QR PNG.
func GeneratePaymentQR(checkoutURL string) ([]byte, error) {
	return qrcode.Encode(checkoutURL, qrcode.Medium, 256)
}

// GeneratePaymentQRBase64 renvoie le même QR prêt à mettre dans <img src="...">
func GeneratePaymentQRBase64(checkoutURL string) (string, error) {
	png, err := GeneratePaymentQR(checkoutURL)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
