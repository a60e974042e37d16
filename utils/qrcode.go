package utils

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// CheckinURL builds the link a scanned QR opens: the check-in form with the
// event (and optionally category and date) pre-filled via query parameters.
func CheckinURL(baseURL, eventID, category, date string) string {
	q := url.Values{}
	q.Set("event", eventID)
	if category != "" {
		q.Set("category", category)
	}
	if date != "" {
		q.Set("date", date)
	}
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode()
}

// QRPNG encodes the link as a PNG QR image. Encoding only fails when the
// payload exceeds what the QR alphabet/version can hold.
func QRPNG(link string) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %q: %w", link, err)
	}
	return png, nil
}
