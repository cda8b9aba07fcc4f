package models

import "time"

type Post struct {
	ID        int       `gorm:"column:post_id;primaryKey" json:"post_id"`
	UserID    int       `gorm:"column:user_id;not null" json:"user_id"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Likes     int       `gorm:"default:0" json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostSummary is the list projection: everything but the body.
type PostSummary struct {
	ID        int       `json:"post_id"`
	UserID    int       `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Title     string    `json:"title"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:        p.ID,
		UserID:    p.UserID,
		Nickname:  p.Nickname,
		Title:     p.Title,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
