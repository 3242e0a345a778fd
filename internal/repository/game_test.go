package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// GameRepositoryTestSuite 对局仓储测试套件
type GameRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	gameRepo     GameRepository
	playerRepo   PlayerRepository
	propertyRepo PropertyRepository
	logRepo      GameLogRepository
}

func (suite *GameRepositoryTestSuite) SetupTest() {
	suite.db = SetupTestDB()
	suite.gameRepo = NewGameRepository(suite.db)
	suite.playerRepo = NewPlayerRepository(suite.db)
	suite.propertyRepo = NewPropertyRepository(suite.db)
	suite.logRepo = NewGameLogRepository(suite.db)
}

func (suite *GameRepositoryTestSuite) TearDownTest() {
	CleanupTestDB(suite.db)
}

// TestGameRepository_Create 测试创建对局
func (suite *GameRepositoryTestSuite) TestGameRepository_Create() {
	ctx := context.Background()

	game := &models.Game{
		HostID:    1,
		Status:    models.GameStatusPlaying,
		TurnPhase: models.PhaseRolling,
	}

	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), game.ID)

	// 验证数据
	found, err := suite.gameRepo.FindByID(ctx, game.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), game.HostID, found.HostID)
	assert.Equal(suite.T(), models.GameStatusPlaying, found.Status)
}

// TestGameRepository_FindByID_NotFound 测试查找不存在的对局
func (suite *GameRepositoryTestSuite) TestGameRepository_FindByID_NotFound() {
	ctx := context.Background()

	_, err := suite.gameRepo.FindByID(ctx, 9999)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "对局不存在")
}

// TestGameRepository_UpdateStatus 测试更新对局状态
func (suite *GameRepositoryTestSuite) TestGameRepository_UpdateStatus() {
	ctx := context.Background()

	game := &models.Game{HostID: 1, Status: models.GameStatusPlaying}
	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)

	err = suite.gameRepo.UpdateStatus(ctx, game.ID, models.GameStatusFinished)
	assert.NoError(suite.T(), err)

	found, err := suite.gameRepo.FindByID(ctx, game.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.GameStatusFinished, found.Status)
}

// TestGameRepository_GetByStatus 测试按状态查找对局
func (suite *GameRepositoryTestSuite) TestGameRepository_GetByStatus() {
	ctx := context.Background()

	err := suite.gameRepo.Create(ctx, &models.Game{HostID: 1, Status: models.GameStatusPlaying})
	assert.NoError(suite.T(), err)
	err = suite.gameRepo.Create(ctx, &models.Game{HostID: 1, Status: models.GameStatusFinished})
	assert.NoError(suite.T(), err)

	playing, err := suite.gameRepo.GetByStatus(ctx, models.GameStatusPlaying)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), playing, 1)
}

// TestPlayerRepository_CreateBatch 测试批量创建玩家
func (suite *GameRepositoryTestSuite) TestPlayerRepository_CreateBatch() {
	ctx := context.Background()

	game := &models.Game{HostID: 1, Status: models.GameStatusPlaying}
	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)

	players := []*models.Player{
		{GameID: game.ID, Name: "测试玩家", Money: 1500, TurnOrder: 0},
		{GameID: game.ID, Name: "蒙奇·D·路飞", IsAI: true, AIDifficulty: models.DifficultyEasy, Money: 1500, TurnOrder: 1},
		{GameID: game.ID, Name: "娜美", IsAI: true, AIDifficulty: models.DifficultyHard, Money: 1500, TurnOrder: 2},
	}
	err = suite.playerRepo.CreateBatch(ctx, players)
	assert.NoError(suite.T(), err)

	// 按回合顺序返回
	found, err := suite.playerRepo.FindByGame(ctx, game.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), found, 3)
	assert.Equal(suite.T(), "测试玩家", found[0].Name)
	assert.Equal(suite.T(), 0, found[0].TurnOrder)
	assert.False(suite.T(), found[0].IsAI)
	assert.True(suite.T(), found[2].IsAI)
}

// TestPlayerRepository_FindActiveByGame 测试过滤破产玩家
func (suite *GameRepositoryTestSuite) TestPlayerRepository_FindActiveByGame() {
	ctx := context.Background()

	game := &models.Game{HostID: 1, Status: models.GameStatusPlaying}
	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)

	players := []*models.Player{
		{GameID: game.ID, Name: "玩家A", Money: 1500, TurnOrder: 0},
		{GameID: game.ID, Name: "玩家B", Money: 0, IsBankrupt: true, TurnOrder: 1},
		{GameID: game.ID, Name: "玩家C", Money: 800, TurnOrder: 2},
	}
	err = suite.playerRepo.CreateBatch(ctx, players)
	assert.NoError(suite.T(), err)

	active, err := suite.playerRepo.FindActiveByGame(ctx, game.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), active, 2)
	assert.Equal(suite.T(), "玩家A", active[0].Name)
	assert.Equal(suite.T(), "玩家C", active[1].Name)
}

// TestPropertyRepository_FindByGameAndSpace 测试地产查询与归属
func (suite *GameRepositoryTestSuite) TestPropertyRepository_FindByGameAndSpace() {
	ctx := context.Background()

	game := &models.Game{HostID: 1, Status: models.GameStatusPlaying}
	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)

	properties := []*models.Property{
		{GameID: game.ID, SpaceID: 1},
		{GameID: game.ID, SpaceID: 3},
	}
	err = suite.propertyRepo.CreateBatch(ctx, properties)
	assert.NoError(suite.T(), err)

	prop, err := suite.propertyRepo.FindByGameAndSpace(ctx, game.ID, 3)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), prop.IsOwned())

	// 设置所有者后可按归属查询
	err = suite.propertyRepo.SetOwner(ctx, prop.ID, 42)
	assert.NoError(suite.T(), err)

	owned, err := suite.propertyRepo.FindByOwner(ctx, game.ID, 42)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), owned, 1)
	assert.True(suite.T(), owned[0].OwnedBy(42))
}

// TestGameLogRepository_FindRecent 测试日志追加与窗口查询
func (suite *GameRepositoryTestSuite) TestGameLogRepository_FindRecent() {
	ctx := context.Background()

	game := &models.Game{HostID: 1, Status: models.GameStatusPlaying}
	err := suite.gameRepo.Create(ctx, game)
	assert.NoError(suite.T(), err)

	messages := []string{"日志1", "日志2", "日志3", "日志4", "日志5"}
	for _, msg := range messages {
		err = suite.logRepo.Create(ctx, &models.GameLog{GameID: game.ID, Message: msg})
		assert.NoError(suite.T(), err)
	}

	// 最近3条，按时间顺序返回
	recent, err := suite.logRepo.FindRecent(ctx, game.ID, 3)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), recent, 3)
	assert.Equal(suite.T(), "日志3", recent[0].Message)
	assert.Equal(suite.T(), "日志5", recent[2].Message)

	count, err := suite.logRepo.CountByGame(ctx, game.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), count)
}

// TestGameRepositoryTestSuite 运行测试套件
func TestGameRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GameRepositoryTestSuite))
}
