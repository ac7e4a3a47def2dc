package entity

import "time"

// Seller is the business profile of a user. It shares the owning user's id,
// so a user can hold at most one seller profile.
type Seller struct {
	ID           string    `json:"id" firestore:"-"`
	BusinessName string    `json:"businessName" firestore:"businessName"`
	BusinessType string    `json:"businessType" firestore:"businessType"`
	BusinessLogo string    `json:"businessLogo" firestore:"businessLogo"`
	Email        string    `json:"email" firestore:"email"`
	Phone        string    `json:"phone" firestore:"phone"`
	Address      string    `json:"address" firestore:"address"`
	TaxID        string    `json:"taxId" firestore:"taxId"`
	AuthorID     string    `json:"authorId" firestore:"authorId"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}
