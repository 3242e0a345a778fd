package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthServiceTestSuite 认证服务测试套件
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service AuthService
	ctx     context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = repository.SetupTestDB()
	s.ctx = context.Background()

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	s.service = NewAuthService(
		s.db,
		repository.NewUserRepository(s.db),
		repository.NewUserAuthRepository(s.db),
		repository.NewUserSessionRepository(s.db),
		jwtManager,
		zap.NewNop(),
	)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(s.db)
}

func (s *AuthServiceTestSuite) register(username, password string) *AuthResponse {
	resp, err := s.service.Register(s.ctx, &RegisterRequest{
		Username: username,
		Password: password,
	})
	require.NoError(s.T(), err)
	return resp
}

// TestRegister 测试注册流程
func (s *AuthServiceTestSuite) TestRegister() {
	resp := s.register("luffy", "secret123")

	assert.NotZero(s.T(), resp.User.ID)
	assert.Equal(s.T(), "luffy", resp.User.Username)
	assert.Equal(s.T(), "luffy", resp.User.Nickname)
	assert.NotEmpty(s.T(), resp.Token)
	assert.NotEmpty(s.T(), resp.RefreshToken)

	// 注册即登录：令牌立即可用
	claims, err := s.service.ValidateToken(s.ctx, resp.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), resp.User.ID, claims.UserID)
}

// TestRegister_DuplicateUsername 测试用户名重复
func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	s.register("luffy", "secret123")

	_, err := s.service.Register(s.ctx, &RegisterRequest{
		Username: "luffy",
		Password: "secret456",
	})
	assert.ErrorIs(s.T(), err, ErrUserExists)
}

// TestRegister_Validation 测试注册参数校验
func (s *AuthServiceTestSuite) TestRegister_Validation() {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"用户名太短", "ab", "secret123"},
		{"用户名含非法字符", "lu ffy!", "secret123"},
		{"密码太短", "luffy", "12345"},
	}
	for _, tc := range cases {
		_, err := s.service.Register(s.ctx, &RegisterRequest{
			Username: tc.username,
			Password: tc.password,
		})
		assert.Error(s.T(), err, tc.name)
	}
}

// TestLogin 测试登录流程
func (s *AuthServiceTestSuite) TestLogin() {
	s.register("luffy", "secret123")

	resp, err := s.service.Login(s.ctx, &LoginRequest{
		Username: "luffy",
		Password: "secret123",
		IP:       "127.0.0.1",
	})
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), resp.Token)

	user, err := repository.NewUserRepository(s.db).FindByUsername(s.ctx, "luffy")
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), user.LastLoginAt)
	assert.Equal(s.T(), "127.0.0.1", user.LastLoginIP)
}

// TestLogin_WrongPassword 测试密码错误并累计失败次数
func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	resp := s.register("luffy", "secret123")

	_, err := s.service.Login(s.ctx, &LoginRequest{
		Username: "luffy",
		Password: "wrong",
	})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	auth, err := repository.NewUserAuthRepository(s.db).FindByUserID(s.ctx, resp.User.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, auth.LoginAttempts)
}

// TestLogin_TooManyAttempts 测试失败次数达到上限后拒绝登录
func (s *AuthServiceTestSuite) TestLogin_TooManyAttempts() {
	s.register("luffy", "secret123")

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := s.service.Login(s.ctx, &LoginRequest{
			Username: "luffy",
			Password: "wrong",
		})
		assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
	}

	// 即使密码正确也被锁定
	_, err := s.service.Login(s.ctx, &LoginRequest{
		Username: "luffy",
		Password: "secret123",
	})
	assert.ErrorIs(s.T(), err, ErrTooManyAttempts)
}

// TestLogin_UnknownUser 测试未知用户
func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	_, err := s.service.Login(s.ctx, &LoginRequest{
		Username: "nobody",
		Password: "secret123",
	})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

// TestLogout 测试退出登录后令牌失效
func (s *AuthServiceTestSuite) TestLogout() {
	resp := s.register("luffy", "secret123")

	err := s.service.Logout(s.ctx, resp.Token)
	require.NoError(s.T(), err)

	_, err = s.service.ValidateToken(s.ctx, resp.Token)
	assert.ErrorIs(s.T(), err, ErrSessionNotFound)
}

// TestRefreshToken 测试刷新令牌
func (s *AuthServiceTestSuite) TestRefreshToken() {
	resp := s.register("luffy", "secret123")

	refreshed, err := s.service.RefreshToken(s.ctx, resp.RefreshToken)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), refreshed.Token)

	claims, err := s.service.ValidateToken(s.ctx, refreshed.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), resp.User.ID, claims.UserID)

	// 访问令牌不能用于刷新
	_, err = s.service.RefreshToken(s.ctx, resp.Token)
	assert.ErrorIs(s.T(), err, ErrInvalidToken)
}

// TestValidateToken_Garbage 测试非法令牌
func (s *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := s.service.ValidateToken(s.ctx, "garbage")
	assert.ErrorIs(s.T(), err, ErrInvalidToken)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
