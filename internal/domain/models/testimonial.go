package models

import "time"

// Testimonial отзыв покупателя. Публикуется только после одобрения администратором.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     *string   `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
