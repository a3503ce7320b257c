package models

import "time"

type User struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null;index" json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
}

type Location struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

type Category struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"unique;not null;index" json:"slug"`
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	ID          uint      `gorm:"primary_key"`
	Title       string    `gorm:"not null" json:"title"`
	Text        string    `gorm:"type:text" json:"text"`
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"` // may be in the future for scheduled posts
	IsPublished bool      `gorm:"default:true;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorID    int       `gorm:"not null;index" json:"author_id"` // auto-filled from the session
	LocationID  *int      `gorm:"index" json:"location_id,omitempty"`
	CategoryID  *int      `gorm:"index" json:"category_id,omitempty"`
	Image       string    `json:"image,omitempty"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	CommentCount int64 `gorm:"-" json:"comment_count"`
}

type Comment struct {
	ID        uint      `gorm:"primary_key"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  int       `gorm:"not null;index" json:"author_id"` // auto-filled from the session
	PostID    uint      `gorm:"not null;index" json:"post_id"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`
}
