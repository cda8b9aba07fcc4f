package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnals634/board-api/internal/auth"
	"github.com/tnals634/board-api/internal/models"
	"github.com/tnals634/board-api/pkg/logger"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

// GetPosts returns every post, newest first, without the body.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Order("created_at desc").Find(&posts).Error; err != nil {
		logger.Error("post list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 조회에 실패하였습니다."})
		return
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, posts[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"posts": summaries})
}

// GetPost returns a single post including its body.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost persists a post owned by the authenticated account, capturing
// the owner's nickname as it is at creation time.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
		return
	}

	var input models.PostRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "데이터 형식이 올바르지 않습니다."})
		return
	}

	var user models.User
	if err := h.db.First(&user, "user_id = ?", userID).Error; err != nil {
		logger.Error("post create user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 작성에 실패하였습니다."})
		return
	}

	post := models.Post{
		UserID:   userID,
		Nickname: user.Nickname,
		Title:    input.Title,
		Content:  input.Content,
	}
	if err := h.db.Create(&post).Error; err != nil {
		logger.Error("post create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 작성에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "게시글 작성에 성공하였습니다."})
}

// UpdatePost overwrites title and content, owner only. Existence is checked
// before ownership, ownership before the payload.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("post_id")

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
		return
	}

	var input models.PostRequest
	bindErr := c.ShouldBindJSON(&input)

	var post models.Post
	if err := h.db.First(&post, "post_id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errorMessage": "게시글이 존재하지 않습니다."})
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"errorMessage": "게시글의 수정 권한이 존재하지 않습니다."})
		return
	}

	if bindErr != nil || input.Title == "" || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "데이터 형식이 올바르지 않습니다."})
		return
	}

	post.Title = input.Title
	post.Content = input.Content
	if err := h.db.Save(&post).Error; err != nil {
		logger.Error("post update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 수정에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "게시글을 수정하였습니다."})
}

// DeletePost removes a post and everything hanging off it: comments and
// like rows go in the same transaction.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")

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

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"errorMessage": "게시글의 삭제 권한이 존재하지 않습니다."})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		logger.Error("post delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 삭제에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "게시글을 삭제하였습니다."})
}

// ToggleLike flips the acting account's like on a post. The delete-or-insert
// and the recount run in one transaction so two overlapping toggles cannot
// leave the counter computed from a stale read; the unique index on
// (user_id, post_id) backstops duplicate rows.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")

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

	liked := false
	err := h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, post.ID).Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.PostLike{UserID: userID, PostID: post.ID}).Error; err != nil {
				return err
			}
			liked = true
		}

		var count int64
		if err := tx.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("post_id = ?", post.ID).Update("likes", count).Error
	})
	if err != nil {
		logger.Error("like toggle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 좋아요에 실패하였습니다."})
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("'%s' 게시글의 좋아요를 등록 하였습니다.", post.Title)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("'%s' 게시글의 좋아요를 취소 하였습니다.", post.Title)})
}

// GetLikedPosts lists every post anyone has liked, most liked first. The
// caller must be logged in but the result is not scoped to them.
func (h *PostHandler) GetLikedPosts(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Where("likes > 0").Order("likes desc, created_at desc").Find(&posts).Error; err != nil {
		logger.Error("liked post list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "게시글 조회에 실패하였습니다."})
		return
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, posts[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"posts": summaries})
}
