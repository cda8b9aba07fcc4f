package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tnals634/board-api/internal/auth"
	"github.com/tnals634/board-api/internal/models"
	"github.com/tnals634/board-api/pkg/logger"
)

type UserHandler struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewUserHandler(db *gorm.DB, jwtSecret []byte) *UserHandler {
	return &UserHandler{db: db, jwtSecret: jwtSecret}
}

// Nickname: 3-20 chars, alphanumeric only, so it also starts alphanumeric.
// Password: 4-20 chars, letters, digits and a small set of symbols.
var (
	nicknameFormat = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9]{2,19}$`)
	passwordFormat = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^*+=-]{4,20}$`)
)

// Signup registers a new account.
//
// Check order mirrors the API contract: duplicate nickname, then missing
// fields, then nickname format, then password format, then the
// password/confirmation match.
func (h *UserHandler) Signup(c *gin.Context) {
	var input models.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "닉네임, 비밀번호, 비밀번호 확인을 확인해주세요."})
		return
	}

	var existing models.User
	err := h.db.Where("nickname = ?", input.Nickname).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"errorMessage": "중복된 닉네임입니다."})
		return
	}
	if err != gorm.ErrRecordNotFound {
		logger.Error("signup lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "회원가입에 실패하였습니다."})
		return
	}

	if input.Nickname == "" || input.Password == "" || input.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "닉네임, 비밀번호, 비밀번호 확인을 확인해주세요."})
		return
	}
	if !nicknameFormat.MatchString(input.Nickname) {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "닉네임 형식이 일치하지 않습니다."})
		return
	}
	if !passwordFormat.MatchString(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "비밀번호 형식이 일치하지 않습니다."})
		return
	}
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusPreconditionFailed, gin.H{"errorMessage": "패스워드가 일치하지 않습니다."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("signup hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "회원가입에 실패하였습니다."})
		return
	}

	user := models.User{
		Nickname: input.Nickname,
		Password: string(hashed),
	}
	if err := h.db.Create(&user).Error; err != nil {
		logger.Error("signup create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "회원가입에 실패하였습니다."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "회원 가입에 성공하였습니다."})
}

// Login authenticates and sets the authorization cookie. A missing account
// and a wrong password get the same answer.
func (h *UserHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusPreconditionFailed, gin.H{"errorMessage": "닉네임 또는 패스워드를 확인해주세요."})
		return
	}

	var user models.User
	if err := h.db.Where("nickname = ?", input.Nickname).First(&user).Error; err != nil {
		c.JSON(http.StatusPreconditionFailed, gin.H{"errorMessage": "닉네임 또는 패스워드를 확인해주세요."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusPreconditionFailed, gin.H{"errorMessage": "닉네임 또는 패스워드를 확인해주세요."})
		return
	}

	token, err := auth.Issue(h.jwtSecret, user.ID)
	if err != nil {
		logger.Error("login token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "로그인에 실패하였습니다."})
		return
	}

	c.SetCookie(auth.CookieName, "Bearer "+token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "로그인에 성공하였습니다."})
}
