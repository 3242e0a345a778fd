package service

import (
	"context"

	"github.com/wfunc/monopoly-game/internal/models"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	IP       string `json:"-"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// TokenClaims 令牌载荷
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}

// AuthService 认证服务接口
type AuthService interface {
	// Register 注册新用户
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	// Login 用户登录
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	// Logout 退出登录，使会话失效
	Logout(ctx context.Context, token string) error
	// RefreshToken 使用刷新令牌换取新的访问令牌
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	// ValidateToken 验证访问令牌并返回载荷
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}
