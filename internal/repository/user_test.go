package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite 用户仓储测试套件
type UserRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	userRepo    UserRepository
	authRepo    UserAuthRepository
	sessionRepo UserSessionRepository
}

func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.db = SetupTestDB()
	suite.userRepo = NewUserRepository(suite.db)
	suite.authRepo = NewUserAuthRepository(suite.db)
	suite.sessionRepo = NewUserSessionRepository(suite.db)
}

func (suite *UserRepositoryTestSuite) TearDownTest() {
	CleanupTestDB(suite.db)
}

// TestUserRepository_Create 测试创建用户
func (suite *UserRepositoryTestSuite) TestUserRepository_Create() {
	ctx := context.Background()

	user := &models.User{Username: "luffy"}
	err := suite.userRepo.Create(ctx, user)
	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), user.ID)

	// BeforeCreate钩子补齐默认值
	found, err := suite.userRepo.FindByUsername(ctx, "luffy")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "luffy", found.Nickname)
	assert.True(suite.T(), found.IsActive())
}

// TestUserRepository_ExistsByUsername 测试用户名占用检查
func (suite *UserRepositoryTestSuite) TestUserRepository_ExistsByUsername() {
	ctx := context.Background()

	exists, err := suite.userRepo.ExistsByUsername(ctx, "nami")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)

	err = suite.userRepo.Create(ctx, &models.User{Username: "nami"})
	assert.NoError(suite.T(), err)

	exists, err = suite.userRepo.ExistsByUsername(ctx, "nami")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

// TestUserAuthRepository_LoginAttempts 测试登录失败计数
func (suite *UserRepositoryTestSuite) TestUserAuthRepository_LoginAttempts() {
	ctx := context.Background()

	user := &models.User{Username: "zoro"}
	err := suite.userRepo.Create(ctx, user)
	assert.NoError(suite.T(), err)

	err = suite.authRepo.Create(ctx, &models.UserAuth{UserID: user.ID, Password: "hashed"})
	assert.NoError(suite.T(), err)

	err = suite.authRepo.IncrementLoginAttempts(ctx, user.ID)
	assert.NoError(suite.T(), err)
	err = suite.authRepo.IncrementLoginAttempts(ctx, user.ID)
	assert.NoError(suite.T(), err)

	auth, err := suite.authRepo.FindByUserID(ctx, user.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, auth.LoginAttempts)

	err = suite.authRepo.ResetLoginAttempts(ctx, user.ID)
	assert.NoError(suite.T(), err)

	auth, err = suite.authRepo.FindByUserID(ctx, user.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, auth.LoginAttempts)
}

// TestUserSessionRepository_Lifecycle 测试会话生命周期
func (suite *UserRepositoryTestSuite) TestUserSessionRepository_Lifecycle() {
	ctx := context.Background()

	session := &models.UserSession{
		UserID:       1,
		SessionID:    "session-001",
		Token:        "token-001",
		IsOnline:     true,
		LastActiveAt: time.Now(),
		ExpireAt:     time.Now().Add(24 * time.Hour),
	}
	err := suite.sessionRepo.Create(ctx, session)
	assert.NoError(suite.T(), err)

	found, err := suite.sessionRepo.FindByToken(ctx, "token-001")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), found.IsOnline)

	err = suite.sessionRepo.Invalidate(ctx, "session-001")
	assert.NoError(suite.T(), err)

	found, err = suite.sessionRepo.FindBySessionID(ctx, "session-001")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), found.IsOnline)
}

// TestUserRepositoryTestSuite 运行测试套件
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
