package dto

import "time"

// KitItemRequest creates or replaces a catalog item.
type KitItemRequest struct {
	Kind        string  `json:"kind"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Goal        *string `json:"goal"`
	Position    int     `json:"position"`
	Active      *bool   `json:"active"`
}

// KitItemResponse is a catalog item.
type KitItemResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Goal        *string   `json:"goal,omitempty"`
	Position    int       `json:"position"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
