// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the central identity record.
// Password and provider tokens are tagged json:"-" so a User can never leak them to clients.
type User struct {
	ID            string    `json:"id" firestore:"id"`
	FirstName     string    `json:"firstName" firestore:"firstName"`
	LastName      string    `json:"lastName" firestore:"lastName"`
	DateOfBirth   string    `json:"dateOfBirth" firestore:"dateOfBirth"`
	Email         string    `json:"email" firestore:"email"`
	EmailVerified bool      `json:"emailVerified" firestore:"emailVerified"`
	PhoneNumber   string    `json:"phoneNumber" firestore:"phoneNumber"`
	Picture       string    `json:"picture" firestore:"picture"`
	IsSeller      bool      `json:"isSeller" firestore:"isSeller"`
	JoinedOn      time.Time `json:"joinedOn" firestore:"joinedOn"`
	Addresses     []Address `json:"addresses" firestore:"addresses"`

	// Password is the bcrypt hash; empty for OAuth-only accounts.
	Password string `json:"-" firestore:"password,omitempty"`

	GoogleID            string `json:"googleId,omitempty" firestore:"googleId,omitempty"`
	GoogleRefreshToken  string `json:"-" firestore:"googleRefreshToken,omitempty"`
	FacebookID          string `json:"facebookId,omitempty" firestore:"facebookId,omitempty"`
	FacebookAccessToken string `json:"-" firestore:"facebookAccessToken,omitempty"`
}

// HasPassword reports whether the account can log in with credentials.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
