package models

import (
	"time"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"` // 8 alphanumeric chars
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	CategoryID  int       `json:"category_id"`
	Category    string    `json:"category"` // joined category name, for display convenience
	CreatedAt   time.Time `json:"created_at"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	URL       string `json:"url"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Store hashed password
}
