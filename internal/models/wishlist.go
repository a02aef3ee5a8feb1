package models

import "time"

// Category groups items for one user. Every user keeps at least one category
// at all times; the service layer rejects deleting the last one.
type Category struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Color     *string   `gorm:"size:32" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Item struct {
	ID          string     `gorm:"size:36;primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	CategoryID  *string    `gorm:"size:36;index" json:"category_id"`
	Title       string     `gorm:"size:500;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Favicon     *string    `gorm:"type:text" json:"favicon"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Links       []ItemLink `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"links"`
}

// ItemLink is one URL attached to an item. At most one link per item carries
// is_primary = true; promotion demotes the others first.
type ItemLink struct {
	ID          string    `gorm:"size:36;primaryKey" json:"id"`
	ItemID      string    `gorm:"size:36;not null;index" json:"item_id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPrimary   bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
