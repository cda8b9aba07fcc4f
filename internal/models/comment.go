package models

import "time"

type Comment struct {
	ID        int       `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	UserID    int       `gorm:"column:user_id;not null" json:"user_id"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	PostID    int       `gorm:"column:post_id;not null" json:"-"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
