package card

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when a QR code is requested for blank content.
	ErrEmptyContent = errors.New("qr content cannot be empty")
	// ErrQRCode is returned when the encoder fails, usually because the content is too long.
	ErrQRCode = errors.New("failed to generate QR code")
)

const defaultQRSize = 256

// QRCode encodes content as a PNG QR code with medium error recovery.
// A non-positive size uses the default of 256 pixels.
func QRCode(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultQRSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCode, err)
	}
	return png, nil
}

// QRDataURI returns QRCode(content, size) as a data: URI for use in an img src.
func QRDataURI(content string, size int) (string, error) {
	png, err := QRCode(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
