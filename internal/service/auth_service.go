package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserExists         = errors.New("用户名已存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserBanned         = errors.New("用户已被封禁")
	ErrSessionNotFound    = errors.New("会话不存在")
	ErrInvalidToken       = errors.New("无效的令牌")
	ErrTokenExpired       = errors.New("令牌已过期")
	ErrTooManyAttempts    = errors.New("登录失败次数过多，请稍后再试")
)

const maxLoginAttempts = 5

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// authService 认证服务实现
type authService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	authRepo    repository.UserAuthRepository
	sessionRepo repository.UserSessionRepository
	jwtManager  *utils.JWTManager
	log         *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	authRepo repository.UserAuthRepository,
	sessionRepo repository.UserSessionRepository,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		db:          db,
		userRepo:    userRepo,
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Register 用户注册
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("检查用户名失败: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	sessionID := uuid.NewString()

	user := &models.User{
		Username: req.Username,
		Nickname: req.Nickname,
		Status:   "active",
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).(repository.UserRepository).Create(ctx, user); err != nil {
			return fmt.Errorf("创建用户失败: %w", err)
		}

		auth := &models.UserAuth{
			UserID:   user.ID,
			Password: hashedPassword,
		}
		if err := s.authRepo.WithTx(tx).(repository.UserAuthRepository).Create(ctx, auth); err != nil {
			return fmt.Errorf("创建认证信息失败: %w", err)
		}

		return nil
	})
	if err != nil {
		s.log.Error("用户注册失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user, sessionID, req.IP, "")
	if err != nil {
		return nil, err
	}

	s.log.Info("用户注册成功",
		zap.Uint("userID", user.ID),
		zap.String("username", user.Username))
	return resp, nil
}

// Login 用户登录
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil || user == nil {
		s.log.Warn("登录失败：用户不存在", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if user.Status == "banned" {
		return nil, ErrUserBanned
	}

	auth, err := s.authRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("获取认证信息失败", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	if auth.LoginAttempts >= maxLoginAttempts {
		return nil, ErrTooManyAttempts
	}

	valid, err := utils.VerifyPassword(req.Password, auth.Password)
	if err != nil || !valid {
		s.log.Warn("登录失败：密码错误", zap.Uint("userID", user.ID))
		_ = s.authRepo.IncrementLoginAttempts(ctx, user.ID)
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()

	resp, err := s.issueTokens(ctx, user, sessionID, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	_ = s.userRepo.UpdateLoginInfo(ctx, user.ID, req.IP)
	_ = s.authRepo.ResetLoginAttempts(ctx, user.ID)

	s.log.Info("用户登录成功",
		zap.Uint("userID", user.ID),
		zap.String("username", user.Username))
	return resp, nil
}

// Logout 退出登录
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.sessionRepo.Invalidate(ctx, claims.SessionID); err != nil {
		s.log.Error("会话失效处理失败",
			zap.String("sessionID", claims.SessionID), zap.Error(err))
		return fmt.Errorf("会话失效处理失败: %w", err)
	}

	s.log.Info("用户退出登录", zap.Uint("userID", claims.UserID))
	return nil
}

// RefreshToken 刷新访问令牌
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.FindBySessionID(ctx, claims.SessionID)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsOnline {
		return nil, ErrSessionNotFound
	}
	if session.ExpireAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	accessToken, err := s.jwtManager.RefreshAccessToken(refreshToken, user.Username)
	if err != nil {
		return nil, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	s.log.Info("令牌刷新成功", zap.Uint("userID", user.ID))

	return &AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetTokenExpiry("access").Seconds()),
	}, nil
}

// ValidateToken 验证访问令牌
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.FindBySessionID(ctx, claims.SessionID)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsOnline {
		return nil, ErrSessionNotFound
	}
	if session.ExpireAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		SessionID: claims.SessionID,
	}, nil
}

// issueTokens 生成令牌并落库会话
func (s *authService) issueTokens(ctx context.Context, user *models.User, sessionID, ip, userAgent string) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, sessionID)
	if err != nil {
		return nil, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("生成刷新令牌失败: %w", err)
	}

	session := &models.UserSession{
		UserID:       user.ID,
		SessionID:    sessionID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		IP:           ip,
		UserAgent:    userAgent,
		IsOnline:     true,
		LastActiveAt: time.Now(),
		ExpireAt:     time.Now().Add(s.jwtManager.GetTokenExpiry("refresh")),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.log.Error("创建会话失败", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}

	return &AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetTokenExpiry("access").Seconds()),
	}, nil
}

// validateRegisterRequest 校验注册参数
func (s *authService) validateRegisterRequest(req *RegisterRequest) error {
	if !usernamePattern.MatchString(req.Username) {
		return errors.New("用户名必须是3-20位字母、数字或下划线")
	}
	if len(req.Password) < 6 {
		return errors.New("密码长度不能少于6位")
	}
	return nil
}
