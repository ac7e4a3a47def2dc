package qrcode

import (
	"strings"

	"himart/config"
	"himart/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:3000"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeServiceFromConfig builds the generator from the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config) service.QRCodeService {
	qc := cfg.QRCode
	if qc == nil {
		return NewQRCodeService(defaultSize, "M", cfg.Frontend.URL)
	}

	baseURL := qc.BaseURL
	if baseURL == "" {
		baseURL = cfg.Frontend.URL
	}

	return NewQRCodeService(qc.Size, qc.ErrorCorrectionLevel, baseURL)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// ProductURL is the storefront link encoded for a product.
func (s *qrcodeService) ProductURL(productID string) string {
	return s.baseURL + "/product/" + productID
}

// GenerateProductQR generates a PNG QR code pointing at the product page
func (s *qrcodeService) GenerateProductQR(productID string) ([]byte, error) {
	if productID == "" {
		return nil, errors.New("product id is required")
	}

	qrCode, err := qrcode.New(s.ProductURL(productID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
