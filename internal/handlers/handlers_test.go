package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tnals634/board-api/internal/database"
	"github.com/tnals634/board-api/internal/handlers"
	"github.com/tnals634/board-api/internal/middleware"
)

var testSecret = []byte("test-secret")

// newTestRouter runs the real route table against an in-memory sqlite
// database. One open connection, so every query sees the same :memory: DB.
func newTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	h := handlers.NewHandler(db, testSecret)

	r := gin.New()
	r.POST("/signup", h.User.Signup)
	r.POST("/login", h.User.Login)
	r.GET("/posts", h.Post.GetPosts)
	r.GET("/posts/:post_id", h.Post.GetPost)
	r.GET("/posts/:post_id/comments", h.Comment.GetComments)

	protected := r.Group("")
	protected.Use(middleware.Auth(testSecret))
	{
		protected.POST("/posts", h.Post.CreatePost)
		protected.PUT("/posts/:post_id", h.Post.UpdatePost)
		protected.DELETE("/posts/:post_id", h.Post.DeletePost)
		protected.PUT("/posts/:post_id/like", h.Post.ToggleLike)
		protected.GET("/like/posts", h.Post.GetLikedPosts)

		protected.POST("/posts/:post_id/comments", h.Comment.CreateComment)
		protected.PUT("/posts/:post_id/comments/:comment_id", h.Comment.UpdateComment)
		protected.DELETE("/posts/:post_id/comments/:comment_id", h.Comment.DeleteComment)
	}

	return db, r
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, r *gin.Engine, nickname, password string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/signup", gin.H{
		"nickname":        nickname,
		"password":        password,
		"confirmPassword": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, r *gin.Engine, nickname, password string) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/login", gin.H{
		"nickname": nickname,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "authorization" {
			return c
		}
	}
	t.Fatal("login did not set an authorization cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createPost(t *testing.T, r *gin.Engine, cookie *http.Cookie, title, content string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/posts", gin.H{"title": title, "content": content}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func postPath(id int, rest string) string {
	return fmt.Sprintf("/posts/%d%s", id, rest)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
