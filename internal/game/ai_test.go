package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
	"gorm.io/gorm"
)

// AIControllerTestSuite AI控制器测试套件
type AIControllerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	roller    *stubRoller
	scheduler *recordingScheduler
	engine    *TurnEngine
}

func (suite *AIControllerTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	suite.roller = &stubRoller{rolls: [][2]int{{1, 2}}}
	suite.scheduler = &recordingScheduler{}
	suite.engine = NewTurnEngine(suite.db, Options{
		Roller:    suite.roller,
		Scheduler: suite.scheduler,
		Seed:      1,
	})
}

func (suite *AIControllerTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// setupAITurn 建对局并把回合推进到AI：人类掷骰后放弃购买
func (suite *AIControllerTestSuite) setupAITurn(difficulty string) (uint, *models.Player, *models.Player) {
	ctx := context.Background()
	gameID, err := suite.engine.CreateGame(ctx, 1, "测试玩家",
		[]AIOpponent{{Name: "娜美", Difficulty: difficulty}})
	require.NoError(suite.T(), err)

	err = suite.engine.RollDice(ctx, gameID, 1)
	require.NoError(suite.T(), err)
	err = suite.engine.SkipBuying(ctx, gameID, 1)
	require.NoError(suite.T(), err)

	players, err := repository.NewPlayerRepository(suite.db).FindByGame(ctx, gameID)
	require.NoError(suite.T(), err)

	game, err := repository.NewGameRepository(suite.db).FindByID(ctx, gameID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), players[1].ID, game.CurrentTurnID)

	return gameID, players[0], players[1]
}

// TestProcessAITurn_CompletesTurn 测试AI回合一次操作内完成并交回人类
func (suite *AIControllerTestSuite) TestProcessAITurn_CompletesTurn() {
	gameID, human, ai := suite.setupAITurn(models.DifficultyEasy)
	ctx := context.Background()

	suite.engine.ProcessAITurn(gameID, ai.ID)

	game, err := repository.NewGameRepository(suite.db).FindByID(ctx, gameID)
	require.NoError(suite.T(), err)

	// 回合已交回人类，阶段回到rolling，骰子清空
	assert.Equal(suite.T(), human.ID, game.CurrentTurnID)
	assert.Equal(suite.T(), models.PhaseRolling, game.TurnPhase)
	assert.Nil(suite.T(), game.Dice1)
	assert.Equal(suite.T(), 2, game.Round)

	// AI移动到了1+2=3
	players, err := repository.NewPlayerRepository(suite.db).FindByGame(ctx, gameID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, players[1].Position)
}

// TestProcessAITurn_PaysRentImmediately 测试AI落在他人地产立即结算租金
func (suite *AIControllerTestSuite) TestProcessAITurn_PaysRentImmediately() {
	gameID, human, ai := suite.setupAITurn(models.DifficultyEasy)
	ctx := context.Background()

	// 谢尔兹镇判给人类，基础租金4贝里
	propertyRepo := repository.NewPropertyRepository(suite.db)
	property, err := propertyRepo.FindByGameAndSpace(ctx, gameID, 3)
	require.NoError(suite.T(), err)
	err = propertyRepo.SetOwner(ctx, property.ID, human.ID)
	require.NoError(suite.T(), err)

	humanMoney := suite.playerMoney(human.ID)

	suite.engine.ProcessAITurn(gameID, ai.ID)

	// 无独立paying阶段：租金立即结算，回合结束
	assert.Equal(suite.T(), 1496, suite.playerMoney(ai.ID))
	assert.Equal(suite.T(), humanMoney+4, suite.playerMoney(human.ID))

	game, err := repository.NewGameRepository(suite.db).FindByID(ctx, gameID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), human.ID, game.CurrentTurnID)
	assert.Equal(suite.T(), models.PhaseRolling, game.TurnPhase)
}

// TestProcessAITurn_HardGateNeverBuys 测试hard难度的价格闸门：
// 价格超过资金三成时无论随机数如何都不买
func (suite *AIControllerTestSuite) TestProcessAITurn_HardGateNeverBuys() {
	gameID, _, ai := suite.setupAITurn(models.DifficultyHard)
	ctx := context.Background()

	// AI资金900、落在香波地群岛（300贝里，占比0.33 > 0.3）
	playerRepo := repository.NewPlayerRepository(suite.db)
	err := playerRepo.UpdateMoney(ctx, ai.ID, 900)
	require.NoError(suite.T(), err)
	err = playerRepo.UpdatePosition(ctx, ai.ID, 28)
	require.NoError(suite.T(), err)

	suite.engine.ProcessAITurn(gameID, ai.ID)

	property, err := repository.NewPropertyRepository(suite.db).FindByGameAndSpace(ctx, gameID, 31)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), property.IsOwned())
	assert.Equal(suite.T(), 900, suite.playerMoney(ai.ID))
}

// TestProcessAITurn_StaleCallback 测试过期回调安静退出
func (suite *AIControllerTestSuite) TestProcessAITurn_StaleCallback() {
	gameID, _, ai := suite.setupAITurn(models.DifficultyEasy)
	ctx := context.Background()

	// 对局已结束
	err := repository.NewGameRepository(suite.db).UpdateStatus(ctx, gameID, models.GameStatusFinished)
	require.NoError(suite.T(), err)

	suite.engine.ProcessAITurn(gameID, ai.ID)

	// 玩家状态未被改动
	players, err := repository.NewPlayerRepository(suite.db).FindByGame(ctx, gameID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, players[1].Position)
	assert.Equal(suite.T(), 1500, players[1].Money)
}

// TestProcessAITurn_WrongTurn 测试轮次不符的回调无操作
func (suite *AIControllerTestSuite) TestProcessAITurn_WrongTurn() {
	ctx := context.Background()
	gameID, err := suite.engine.CreateGame(ctx, 1, "测试玩家",
		[]AIOpponent{{Name: "娜美", Difficulty: models.DifficultyEasy}})
	require.NoError(suite.T(), err)

	players, err := repository.NewPlayerRepository(suite.db).FindByGame(ctx, gameID)
	require.NoError(suite.T(), err)

	// 当前是人类回合，AI回调必须无操作
	suite.engine.ProcessAITurn(gameID, players[1].ID)

	game, err := repository.NewGameRepository(suite.db).FindByID(ctx, gameID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), players[0].ID, game.CurrentTurnID)
	assert.Nil(suite.T(), game.Dice1)
}

// playerMoney 读出玩家当前资金
func (suite *AIControllerTestSuite) playerMoney(playerID uint) int {
	player, err := repository.NewPlayerRepository(suite.db).FindByID(context.Background(), playerID)
	require.NoError(suite.T(), err)
	return player.Money
}

// TestAIControllerTestSuite 运行测试套件
func TestAIControllerTestSuite(t *testing.T) {
	suite.Run(t, new(AIControllerTestSuite))
}
