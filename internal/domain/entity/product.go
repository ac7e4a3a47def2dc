package entity

import (
	"strings"
	"time"
)

// Product is a catalog entry owned by the seller whose id is SellerID.
type Product struct {
	ID            string    `json:"id" firestore:"-"`
	Title         string    `json:"title" firestore:"title"`
	Description   string    `json:"description" firestore:"description"`
	Price         float64   `json:"price" firestore:"price"`
	DiscountPrice float64   `json:"discountPrice" firestore:"discountPrice"`
	Image         string    `json:"image" firestore:"image"`
	Stock         int       `json:"stock" firestore:"stock"`
	Category      string    `json:"category" firestore:"category"`
	Keywords      []string  `json:"keywords" firestore:"keywords"`
	BrandName     string    `json:"brandName" firestore:"brandName"`
	SellerID      string    `json:"sellerId" firestore:"sellerId"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// EffectivePrice is the price a buyer pays: the discount price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}

	return p.Price
}

// IsDiscounted reports whether a discount price is set.
func (p *Product) IsDiscounted() bool {
	return p.DiscountPrice > 0
}

// OwnedBy reports whether userID is the product's seller.
func (p *Product) OwnedBy(userID string) bool {
	return p.SellerID != "" && p.SellerID == userID
}

// BlobKey derives the storage key of the product's primary image.
func (p *Product) BlobKey() string {
	return ProductBlobKey(p.ID)
}

// ProductBlobKey derives the storage key of a product's primary image from its id.
func ProductBlobKey(productID string) string {
	return "product_" + productID
}

// imageRefPrefix marks a stored image that lives in the bucket and must be signed on read.
const imageRefPrefix = "blobkey:"

// ImageRef is the stored form of an image kept in the bucket under key.
func ImageRef(key string) string {
	return imageRefPrefix + key
}

// ImageKey returns the bucket key of a stored image reference.
func ImageKey(image string) (string, bool) {
	return strings.CutPrefix(image, imageRefPrefix)
}

// ProductDetail is a product merged with its derived engagement figures.
type ProductDetail struct {
	*Product
	ProductStats
}

// ProductSummary is the reduced shape returned by search.
type ProductSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}
