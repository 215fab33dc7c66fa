package client

import "time"

// Product is a catalog item as the API returns it. Image is nil when the
// product has no picture.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Setting is the store contact and about text. ID is never sent on update.
type Setting struct {
	ID      uint   `json:"id,omitempty"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	MapsURL string `json:"maps_url"`
	AboutUs string `json:"about_us"`
}

// Message is a contact-form submission; Body travels as "message".
type Message struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
