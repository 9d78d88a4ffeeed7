package models

// User is the wire representation of a user account.
// The password hash is never part of any response.
type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUserRequest is the payload for account creation.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenRequest is the payload for exchanging credentials for a token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateMeRequest is the payload for profile updates. Only the fields
// present in the request are applied.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// Product is the wire representation of a product. The owner is not
// part of the client-visible schema.
type Product struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// CreateProductRequest is the payload for creating a product. Unknown
// fields, including any owner reference, are dropped during decoding.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// PatchProductRequest is the payload for full and partial updates.
// Only the fields present in the request are applied.
type PatchProductRequest struct {
	Name        *string `json:"name"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}
