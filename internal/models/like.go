package models

import "time"

// PostLike is one account's like on one post. The composite unique index
// keeps a (user, post) pair from ever holding more than one row.
type PostLike struct {
	ID        int       `gorm:"column:like_id;primaryKey" json:"like_id"`
	UserID    int       `gorm:"column:user_id;not null;uniqueIndex:uk_user_post" json:"user_id"`
	PostID    int       `gorm:"column:post_id;not null;uniqueIndex:uk_user_post" json:"post_id"`
	CreatedAt time.Time `json:"createdAt"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
