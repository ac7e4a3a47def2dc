// Package entity contains the core business objects of the project.
package entity

// Address is a postal address attached to a user profile.
// The first address captured at registration is marked Default.
type Address struct {
	Street     string `json:"street" firestore:"street"`
	City       string `json:"city" firestore:"city"`
	State      string `json:"state" firestore:"state"`
	PostalCode string `json:"postalCode" firestore:"postalCode"`
	Country    string `json:"country" firestore:"country"`
	Default    bool   `json:"default" firestore:"default"`
}
