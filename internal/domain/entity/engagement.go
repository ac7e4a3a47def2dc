package entity

import "time"

// EngagementKind names one per-user event type recorded under a product.
// The value doubles as the sub-collection name in the document store.
type EngagementKind string

const (
	EngagementImpression EngagementKind = "impressions"
	EngagementClick      EngagementKind = "clickedBy"
	EngagementSold       EngagementKind = "sold"
	EngagementRating     EngagementKind = "ratedBy"
)

// EngagementKinds lists every kind in a stable order.
var EngagementKinds = []EngagementKind{
	EngagementImpression,
	EngagementClick,
	EngagementSold,
	EngagementRating,
}

// String returns the string representation of the EngagementKind.
func (k EngagementKind) String() string {
	return string(k)
}

// Engagement marks that UserID produced one event of Kind on ProductID.
// Rating is only meaningful for EngagementRating.
type Engagement struct {
	ProductID string         `json:"productId" firestore:"-"`
	UserID    string         `json:"userId" firestore:"-"`
	Kind      EngagementKind `json:"kind" firestore:"-"`
	Rating    int            `json:"rating,omitempty" firestore:"rating,omitempty"`
	Timestamp time.Time      `json:"timestamp" firestore:"timestamp"`
}

// Seller display names used when enrichment cannot resolve a real one.
const (
	SellerNameUnknown       = "Unknown"
	SellerNameUnknownSeller = "Unknown Seller"
)

// ProductStats are the aggregate figures derived from engagement records on demand.
type ProductStats struct {
	SellerName       string `json:"sellerName"`
	TotalClicks      int64  `json:"totalClicks"`
	TotalRatings     int64  `json:"totalRatings"`
	TotalSold        int64  `json:"totalSold"`
	TotalImpressions int64  `json:"totalImpressions"`
}

// Popularity is the trending score: impressions plus clicks.
func (s ProductStats) Popularity() int64 {
	return s.TotalImpressions + s.TotalClicks
}
