package domain

import "time"

type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parentId" db:"parent_id"`
	Logo      *string   `json:"logo" db:"logo"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	SubCategories []Category `json:"subCategories,omitempty" db:"-"`
}
