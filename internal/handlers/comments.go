package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnals634/board-api/internal/auth"
	"github.com/tnals634/board-api/internal/models"
	"github.com/tnals634/board-api/pkg/logger"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// CreateComment adds a comment to an existing post, capturing the author's
// nickname at creation time.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID := c.Param("post_id")

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
		return
	}

	var input models.CommentRequest
	bindErr := c.ShouldBindJSON(&input)

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	if bindErr != nil || input.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "댓글을 입력해주세요."})
		return
	}

	var user models.User
	if err := h.db.First(&user, "user_id = ?", userID).Error; err != nil {
		logger.Error("comment create user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "댓글 작성에 실패하였습니다."})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		UserID:   userID,
		Nickname: user.Nickname,
		Comment:  input.Comment,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		logger.Error("comment create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "댓글 작성에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "댓글 작성에 성공하였습니다."})
}

// GetComments lists a post's comments, newest first.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	var comments []models.Comment
	if err := h.db.Where("post_id = ?", post.ID).Order("created_at desc").Find(&comments).Error; err != nil {
		logger.Error("comment list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "댓글 조회에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// UpdateComment rewrites a comment body, owner only. Checks run in the
// contract's order: post, then comment, then payload, then ownership. The
// write itself matches on comment id, post id and owner id together.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	postID := c.Param("post_id")
	commentID := c.Param("comment_id")

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
		return
	}

	var input models.CommentRequest
	bindErr := c.ShouldBindJSON(&input)

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, "comment_id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "댓글이 존재하지 않습니다."})
		return
	}

	if bindErr != nil || input.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "댓글을 입력해주세요."})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"errorMessage": "댓글의 수정 권한이 존재하지 않습니다."})
		return
	}

	err := h.db.Model(&models.Comment{}).
		Where("comment_id = ? AND post_id = ? AND user_id = ?", comment.ID, post.ID, userID).
		Update("comment", input.Comment).Error
	if err != nil {
		logger.Error("comment update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "댓글 수정에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "댓글을 수정하였습니다."})
}

// DeleteComment removes a comment, owner only, through the same compound
// match as UpdateComment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID := c.Param("post_id")
	commentID := c.Param("comment_id")

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
		return
	}

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, "comment_id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "댓글이 존재하지 않습니다."})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"errorMessage": "댓글의 삭제 권한이 존재하지 않습니다."})
		return
	}

	err := h.db.
		Where("comment_id = ? AND post_id = ? AND user_id = ?", comment.ID, post.ID, userID).
		Delete(&models.Comment{}).Error
	if err != nil {
		logger.Error("comment delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "댓글 삭제에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "댓글을 삭제하였습니다."})
}
