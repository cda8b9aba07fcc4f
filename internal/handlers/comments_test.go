package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnals634/board-api/internal/models"
)

func TestCreateCommentMissingPost(t *testing.T) {
	_, r := newTestRouter(t)
	signup(t, r, "writer1", "pass1234")
	cookie := login(t, r, "writer1", "pass1234")

	w := doJSON(r, http.MethodPost, "/posts/999/comments", gin.H{"comment": "hi"}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "게시글이 존재하지 않습니다.", decodeBody(t, w)["errorMessage"])
}

func TestCreateCommentValidation(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "writer1", "pass1234")
	cookie := login(t, r, "writer1", "pass1234")

	createPost(t, r, cookie, "A", "B")
	var post models.Post
	require.NoError(t, db.First(&post).Error)

	for _, body := range []gin.H{{}, {"comment": ""}, {"comment": 7}} {
		w := doJSON(r, http.MethodPost, postPath(post.ID, "/comments"), body, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "댓글을 입력해주세요.", decodeBody(t, w)["errorMessage"])
	}
}

func TestCreateAndListComments(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "writer1", "pass1234")
	cookie := login(t, r, "writer1", "pass1234")

	createPost(t, r, cookie, "A", "B")
	var post models.Post
	require.NoError(t, db.First(&post).Error)

	w := doJSON(r, http.MethodPost, postPath(post.ID, "/comments"), gin.H{"comment": "hello"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	// Seed an older comment directly so the ordering is unambiguous.
	require.NoError(t, db.Create(&models.Comment{
		PostID:    post.ID,
		UserID:    99,
		Nickname:  "older",
		Comment:   "earlier",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}).Error)

	w = doJSON(r, http.MethodGet, postPath(post.ID, "/comments"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	comments := decodeBody(t, w)["comments"].([]any)
	require.Len(t, comments, 2)
	newest := comments[0].(map[string]any)
	assert.Equal(t, "hello", newest["comment"])
	assert.Equal(t, "writer1", newest["nickname"])
}

func TestListCommentsMissingPost(t *testing.T) {
	_, r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/posts/999/comments", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCommentOwnership(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "owner1", "pass1234")
	signup(t, r, "commenter1", "pass1234")
	owner := login(t, r, "owner1", "pass1234")
	commenter := login(t, r, "commenter1", "pass1234")

	createPost(t, r, owner, "A", "B")
	var post models.Post
	require.NoError(t, db.First(&post).Error)

	w := doJSON(r, http.MethodPost, postPath(post.ID, "/comments"), gin.H{"comment": "mine"}, commenter)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)

	path := postPath(post.ID, "/comments/") + itoa(comment.ID)

	// The post's owner is not the comment's owner.
	w = doJSON(r, http.MethodPut, path, gin.H{"comment": "edited"}, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "댓글의 수정 권한이 존재하지 않습니다.", decodeBody(t, w)["errorMessage"])

	w = doJSON(r, http.MethodPut, path, gin.H{"comment": "edited"}, commenter)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&comment, "comment_id = ?", comment.ID).Error)
	assert.Equal(t, "edited", comment.Comment)
}

func TestUpdateCommentCheckOrder(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "owner1", "pass1234")
	signup(t, r, "commenter1", "pass1234")
	owner := login(t, r, "owner1", "pass1234")
	commenter := login(t, r, "commenter1", "pass1234")

	createPost(t, r, owner, "A", "B")
	var post models.Post
	require.NoError(t, db.First(&post).Error)

	// Post first.
	w := doJSON(r, http.MethodPut, "/posts/999/comments/1", gin.H{}, commenter)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "게시글이 존재하지 않습니다.", decodeBody(t, w)["errorMessage"])

	// Then the comment.
	w = doJSON(r, http.MethodPut, postPath(post.ID, "/comments/999"), gin.H{}, commenter)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "댓글이 존재하지 않습니다.", decodeBody(t, w)["errorMessage"])

	w = doJSON(r, http.MethodPost, postPath(post.ID, "/comments"), gin.H{"comment": "mine"}, commenter)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)

	// Then the payload, even for a non-owner.
	w = doJSON(r, http.MethodPut, postPath(post.ID, "/comments/")+itoa(comment.ID), gin.H{}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCommentCompoundMatch(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "owner1", "pass1234")
	owner := login(t, r, "owner1", "pass1234")

	createPost(t, r, owner, "A", "B")
	createPost(t, r, owner, "C", "D")
	var posts []models.Post
	require.NoError(t, db.Order("post_id").Find(&posts).Error)

	w := doJSON(r, http.MethodPost, postPath(posts[0].ID, "/comments"), gin.H{"comment": "on first"}, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)

	// Addressing the comment through the wrong post updates nothing.
	w = doJSON(r, http.MethodPut, postPath(posts[1].ID, "/comments/")+itoa(comment.ID), gin.H{"comment": "edited"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&comment, "comment_id = ?", comment.ID).Error)
	assert.Equal(t, "on first", comment.Comment)
}

func TestDeleteCommentOwnership(t *testing.T) {
	db, r := newTestRouter(t)
	signup(t, r, "owner1", "pass1234")
	signup(t, r, "commenter1", "pass1234")
	owner := login(t, r, "owner1", "pass1234")
	commenter := login(t, r, "commenter1", "pass1234")

	createPost(t, r, owner, "A", "B")
	var post models.Post
	require.NoError(t, db.First(&post).Error)

	w := doJSON(r, http.MethodPost, postPath(post.ID, "/comments"), gin.H{"comment": "mine"}, commenter)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)

	path := postPath(post.ID, "/comments/") + itoa(comment.ID)

	w = doJSON(r, http.MethodDelete, path, nil, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "댓글의 삭제 권한이 존재하지 않습니다.", decodeBody(t, w)["errorMessage"])

	w = doJSON(r, http.MethodDelete, path, nil, commenter)
	assert.Equal(t, http.StatusOK, w.Code)

	var rows int64
	db.Model(&models.Comment{}).Count(&rows)
	assert.Zero(t, rows)
}
