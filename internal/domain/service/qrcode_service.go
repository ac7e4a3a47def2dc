package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateProductQR encodes a link to the product page as a PNG image
	GenerateProductQR(productID string) ([]byte, error)
}
