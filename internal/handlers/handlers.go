package handlers

import (
	"gorm.io/gorm"
)

// Handler combines all handler types
type Handler struct {
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, jwtSecret []byte) *Handler {
	return &Handler{
		User:    NewUserHandler(db, jwtSecret),
		Post:    NewPostHandler(db),
		Comment: NewCommentHandler(db),
	}
}
