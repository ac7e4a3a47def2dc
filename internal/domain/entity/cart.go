package entity

// CartItem is one product entry in a user's cart.
type CartItem struct {
	ProductID string `json:"productId" firestore:"productId"`
	Quantity  int    `json:"quantity" firestore:"quantity"`
}

// CartLine is a cart item joined with the live product it references.
type CartLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}
