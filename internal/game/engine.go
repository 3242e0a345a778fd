package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/monopoly-game/internal/board"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/logger"
	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/rules"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier 对局状态推送钩子。每个提交成功的引擎操作（含AI回合）之后
// 以最新视图回调一次，由websocket推送层实现。
type Notifier interface {
	GameUpdated(view *GameView)
}

// AIOpponent 创建对局时的AI对手描述
type AIOpponent struct {
	Name       string `json:"name" binding:"required"`
	Difficulty string `json:"difficulty"`
}

// Options 引擎可选配置
type Options struct {
	Roller      rules.Roller  // 骰子来源，缺省为时间种子
	Scheduler   TurnScheduler // AI回合调度器，缺省为timer调度器
	Notifier    Notifier      // 状态推送，可为空
	AITurnDelay time.Duration // AI回合延迟，缺省1秒
	LogWindow   int           // 视图返回的日志条数，缺省10
	MaxAI       int           // 单局AI对手上限，缺省7
	Seed        int64         // AI决策随机源种子，0为时间种子
}

// TurnEngine 回合引擎：持有对局状态机的全部操作。
// 每个操作在单个数据库事务中执行，事务即串行化点。
type TurnEngine struct {
	db        *gorm.DB
	roller    rules.Roller
	scheduler TurnScheduler
	notifier  Notifier

	aiTurnDelay time.Duration
	logWindow   int
	maxAI       int

	// AI购买决策的随机源
	rngMu sync.Mutex
	rng   *rand.Rand

	log *zap.Logger
}

// NewTurnEngine 创建回合引擎
func NewTurnEngine(db *gorm.DB, opts Options) *TurnEngine {
	if opts.Roller == nil {
		opts.Roller = rules.NewRoller()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}
	if opts.AITurnDelay <= 0 {
		opts.AITurnDelay = time.Second
	}
	if opts.LogWindow <= 0 {
		opts.LogWindow = 10
	}
	if opts.MaxAI <= 0 {
		opts.MaxAI = 7
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &TurnEngine{
		db:          db,
		roller:      opts.Roller,
		scheduler:   opts.Scheduler,
		notifier:    opts.Notifier,
		aiTurnDelay: opts.AITurnDelay,
		logWindow:   opts.LogWindow,
		maxAI:       opts.MaxAI,
		rng:         rand.New(rand.NewSource(seed)),
		log:         logger.GetModuleLogger("game"),
	}
}

// Scheduler 返回引擎使用的调度器（关机时Stop用）
func (e *TurnEngine) Scheduler() TurnScheduler {
	return e.scheduler
}

// pendingTurn 事务提交后需要调度的AI回合
type pendingTurn struct {
	gameID   uint
	playerID uint
}

// CreateGame 创建对局：一名人类玩家（回合顺序0）加1-N名AI对手（顺序1..N），
// 每个可购买格子一条地产记录，对局立即进入playing状态。
func (e *TurnEngine) CreateGame(ctx context.Context, hostID uint, hostName string, opponents []AIOpponent) (uint, error) {
	if len(opponents) == 0 {
		return 0, errors.New(errors.ErrInvalidParam, "至少需要一名AI对手")
	}
	if len(opponents) > e.maxAI {
		return 0, errors.Newf(errors.ErrGameFull, "AI对手最多%d名", e.maxAI)
	}
	for _, opp := range opponents {
		if opp.Name == "" {
			return 0, errors.New(errors.ErrInvalidParam, "AI对手名称不能为空")
		}
		switch opp.Difficulty {
		case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		default:
			return 0, errors.Newf(errors.ErrInvalidParam, "无效的AI难度: %s", opp.Difficulty)
		}
	}

	var gameID uint
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gameRepo := repository.NewGameRepository(tx)
		playerRepo := repository.NewPlayerRepository(tx)
		propertyRepo := repository.NewPropertyRepository(tx)

		game := &models.Game{
			HostID:    hostID,
			Status:    models.GameStatusPlaying,
			TurnPhase: models.PhaseRolling,
			Round:     1,
		}
		if err := gameRepo.Create(ctx, game); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseInsert)
		}

		// 人类玩家固定回合顺序0
		players := []*models.Player{
			{GameID: game.ID, Name: hostName, Money: rules.StartingMoney, TurnOrder: 0},
		}
		for i, opp := range opponents {
			difficulty := opp.Difficulty
			if difficulty == "" {
				difficulty = board.DifficultyFor(opp.Name)
			}
			players = append(players, &models.Player{
				GameID:       game.ID,
				Name:         opp.Name,
				IsAI:         true,
				AIDifficulty: difficulty,
				Money:        rules.StartingMoney,
				TurnOrder:    i + 1,
			})
		}
		if err := playerRepo.CreateBatch(ctx, players); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseInsert)
		}

		// 开局从人类玩家开始
		game.CurrentTurnID = players[0].ID
		if err := gameRepo.Update(ctx, game); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseUpdate)
		}

		// 每个可购买格子一条地产记录
		ownable := board.OwnableSpaces()
		properties := make([]*models.Property, 0, len(ownable))
		for _, space := range ownable {
			properties = append(properties, &models.Property{
				GameID:  game.ID,
				SpaceID: space.ID,
			})
		}
		if err := propertyRepo.CreateBatch(ctx, properties); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseInsert)
		}

		if err := e.appendLog(ctx, tx, game.ID, nil, "游戏开始！向着大海贼时代出发！"); err != nil {
			return err
		}

		gameID = game.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.LogGameEvent("game_created", gameID, map[string]interface{}{
		"host_id":   hostID,
		"opponents": len(opponents),
	})
	e.notify(ctx, gameID)
	return gameID, nil
}

// RollDice 人类玩家掷骰子并立即完成落地结算。
// moving是瞬态阶段，本次调用内就会推进到下一阶段。
func (e *TurnEngine) RollDice(ctx context.Context, gameID, userID uint) error {
	var pending *pendingTurn
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, player, err := e.loadHumanTurn(ctx, tx, gameID, userID, models.PhaseRolling)
		if err != nil {
			return err
		}

		d1, d2 := e.roller.Roll()
		game.Dice1 = &d1
		game.Dice2 = &d2
		game.TurnPhase = models.PhaseMoving

		if err := e.appendLog(ctx, tx, gameID, &player.ID,
			fmt.Sprintf("%s 掷出了 %d + %d = %d 点", player.Name, d1, d2, d1+d2)); err != nil {
			return err
		}

		move := rules.Move(player.Position, d1+d2)
		player.Position = move.NewPosition
		if move.PassedGo {
			player.Money += rules.GoBonus
			if err := e.appendLog(ctx, tx, gameID, &player.ID,
				fmt.Sprintf("%s 经过起点，获得 %d 贝里", player.Name, rules.GoBonus)); err != nil {
				return err
			}
		}

		pending, err = e.resolveLanding(ctx, tx, game, player, false)
		return err
	})
	if err != nil {
		return err
	}

	e.afterCommit(ctx, gameID, pending)
	return nil
}

// BuyProperty 人类玩家购买当前所在格子的地产
func (e *TurnEngine) BuyProperty(ctx context.Context, gameID, userID uint) error {
	var pending *pendingTurn
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, player, err := e.loadHumanTurn(ctx, tx, gameID, userID, models.PhaseBuying)
		if err != nil {
			return err
		}

		space := board.SpaceAt(player.Position)
		if !space.Type.IsOwnable() {
			return errors.Newf(errors.ErrSpaceNotOwnable, "%s 不可购买", space.Name)
		}

		propertyRepo := repository.NewPropertyRepository(tx)
		property, err := propertyRepo.FindByGameAndSpace(ctx, gameID, space.ID)
		if err != nil {
			return errors.Wrap(err, errors.ErrNotFound)
		}
		if property.IsOwned() {
			return errors.Newf(errors.ErrPropertyOwned, "%s 已有主人", space.Name)
		}
		if player.Money < space.Price {
			return errors.Newf(errors.ErrInsufficientFunds, "需要 %d 贝里，当前只有 %d", space.Price, player.Money)
		}

		player.Money -= space.Price
		property.OwnerID = &player.ID
		if err := propertyRepo.Update(ctx, property); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseUpdate)
		}

		if err := e.appendLog(ctx, tx, gameID, &player.ID,
			fmt.Sprintf("%s 购买了 %s，花费 %d 贝里", player.Name, space.Name, space.Price)); err != nil {
			return err
		}

		pending, err = e.endTurn(ctx, tx, game, player)
		return err
	})
	if err != nil {
		return err
	}

	e.afterCommit(ctx, gameID, pending)
	return nil
}

// SkipBuying 人类玩家放弃购买，直接结束回合
func (e *TurnEngine) SkipBuying(ctx context.Context, gameID, userID uint) error {
	var pending *pendingTurn
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, player, err := e.loadHumanTurn(ctx, tx, gameID, userID, models.PhaseBuying)
		if err != nil {
			return err
		}

		space := board.SpaceAt(player.Position)
		if err := e.appendLog(ctx, tx, gameID, &player.ID,
			fmt.Sprintf("%s 放弃购买 %s", player.Name, space.Name)); err != nil {
			return err
		}

		pending, err = e.endTurn(ctx, tx, game, player)
		return err
	})
	if err != nil {
		return err
	}

	e.afterCommit(ctx, gameID, pending)
	return nil
}

// PayRent 人类玩家确认支付租金（租金已在落地结算时扣除），结束回合
func (e *TurnEngine) PayRent(ctx context.Context, gameID, userID uint) error {
	var pending *pendingTurn
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, player, err := e.loadHumanTurn(ctx, tx, gameID, userID, models.PhasePaying)
		if err != nil {
			return err
		}

		pending, err = e.endTurn(ctx, tx, game, player)
		return err
	})
	if err != nil {
		return err
	}

	e.afterCommit(ctx, gameID, pending)
	return nil
}

// loadHumanTurn 加载对局并校验人类玩家操作前置条件：
// 对局进行中、阶段匹配、调用者是对局主机、当前回合是该人类玩家。
func (e *TurnEngine) loadHumanTurn(ctx context.Context, tx *gorm.DB, gameID, userID uint, phase string) (*models.Game, *models.Player, error) {
	gameRepo := repository.NewGameRepository(tx)
	playerRepo := repository.NewPlayerRepository(tx)

	game, err := gameRepo.FindByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrNotFound)
	}
	if game.HostID != userID {
		return nil, nil, errors.New(errors.ErrPermissionDenied, "不是你的对局")
	}
	if !game.IsPlaying() {
		return nil, nil, errors.Newf(errors.ErrGameNotPlaying, "对局状态为 %s", game.Status)
	}
	if game.TurnPhase != phase {
		return nil, nil, errors.Newf(errors.ErrWrongPhase, "当前阶段为 %s", game.TurnPhase)
	}

	player, err := playerRepo.FindByID(ctx, game.CurrentTurnID)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrNotFound)
	}
	if player.IsAI {
		return nil, nil, errors.New(errors.ErrPlayerTypeMismatch, "当前是AI玩家的回合")
	}

	return game, player, nil
}

// resolveLanding 落地结算：按格子类型施加效果并推进阶段。
// 人类与AI共用同一套结算，auto控制决策方式：
// 人类在无主地产停在buying、有主地产停在paying等待确认；
// AI（auto=true）就地执行购买决策与支付，回合在本次操作内结束。
func (e *TurnEngine) resolveLanding(ctx context.Context, tx *gorm.DB, game *models.Game, player *models.Player, auto bool) (*pendingTurn, error) {
	space := board.SpaceAt(player.Position)

	if err := e.appendLog(ctx, tx, game.ID, &player.ID,
		fmt.Sprintf("%s 来到了 %s", player.Name, space.Name)); err != nil {
		return nil, err
	}

	switch space.Type {
	case board.TypeProperty, board.TypeRailroad, board.TypeUtility:
		propertyRepo := repository.NewPropertyRepository(tx)
		property, err := propertyRepo.FindByGameAndSpace(ctx, game.ID, space.ID)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrNotFound)
		}

		switch {
		case !property.IsOwned():
			if !auto {
				// 等待人类玩家决定是否购买
				game.TurnPhase = models.PhaseBuying
				return nil, e.saveTurnState(ctx, tx, game, player)
			}
			if err := e.aiDecideBuy(ctx, tx, game, player, property, space); err != nil {
				return nil, err
			}
			return e.endTurn(ctx, tx, game, player)

		case property.OwnedBy(player.ID) || property.IsMortgaged:
			return e.endTurn(ctx, tx, game, player)

		default:
			if err := e.payRentTo(ctx, tx, game, player, property, space); err != nil {
				return nil, err
			}
			if !auto {
				// 人类玩家停在paying阶段，确认后结束回合
				game.TurnPhase = models.PhasePaying
				return nil, e.saveTurnState(ctx, tx, game, player)
			}
			return e.endTurn(ctx, tx, game, player)
		}

	case board.TypeTax:
		amount := rules.TaxAmount(space)
		player.Money = rules.DeductClamped(player.Money, amount)
		if err := e.appendLog(ctx, tx, game.ID, &player.ID,
			fmt.Sprintf("%s 缴纳 %s %d 贝里", player.Name, space.Name, amount)); err != nil {
			return nil, err
		}
		return e.endTurn(ctx, tx, game, player)

	case board.TypeGoToJail:
		player.Position = board.JailPosition
		player.IsInJail = true
		player.JailTurns = 0
		if err := e.appendLog(ctx, tx, game.ID, &player.ID,
			fmt.Sprintf("%s 被海军逮捕，关进推进城！", player.Name)); err != nil {
			return nil, err
		}
		return e.endTurn(ctx, tx, game, player)

	case board.TypeGo, board.TypeJail, board.TypeFreeParking, board.TypeChance, board.TypeCommunityChest:
		// 无额外效果（卡片抽取预留），结束回合
		return e.endTurn(ctx, tx, game, player)

	default:
		return e.endTurn(ctx, tx, game, player)
	}
}

// payRentTo 支付租金：付方钳制在零以上，收方全额入账
func (e *TurnEngine) payRentTo(ctx context.Context, tx *gorm.DB, game *models.Game, payer *models.Player, property *models.Property, space board.Space) error {
	playerRepo := repository.NewPlayerRepository(tx)

	owner, err := playerRepo.FindByID(ctx, *property.OwnerID)
	if err != nil {
		return errors.Wrap(err, errors.ErrNotFound)
	}

	rent := rules.Rent(space, property.Houses, property.HasHotel)
	payer.Money = rules.DeductClamped(payer.Money, rent)
	owner.Money += rent
	if err := playerRepo.Update(ctx, owner); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}

	return e.appendLog(ctx, tx, game.ID, &payer.ID,
		fmt.Sprintf("%s 向 %s 支付了 %d 贝里租金", payer.Name, owner.Name, rent))
}

// endTurn 回合交接：保存当前玩家，重算活跃玩家列表，推进回合指针。
// 只剩一名活跃玩家时判定胜者并结束对局；下一位是AI时返回待调度的AI回合。
func (e *TurnEngine) endTurn(ctx context.Context, tx *gorm.DB, game *models.Game, mover *models.Player) (*pendingTurn, error) {
	gameRepo := repository.NewGameRepository(tx)
	playerRepo := repository.NewPlayerRepository(tx)

	if err := playerRepo.Update(ctx, mover); err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseUpdate)
	}

	active, err := playerRepo.FindActiveByGame(ctx, game.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}
	if len(active) == 0 {
		return nil, errors.New(errors.ErrUnknown, "对局没有活跃玩家")
	}

	// 只剩一人，对局结束
	if len(active) == 1 {
		game.Status = models.GameStatusFinished
		game.Winner = active[0].Name
		game.TurnPhase = models.PhaseRolling
		game.Dice1 = nil
		game.Dice2 = nil
		if err := gameRepo.Update(ctx, game); err != nil {
			return nil, errors.Wrap(err, errors.ErrDatabaseUpdate)
		}
		return nil, e.appendLog(ctx, tx, game.ID, &active[0].ID,
			fmt.Sprintf("%s 获得了胜利！游戏结束", active[0].Name))
	}

	// 在按固定顺序排列的活跃列表中找当前玩家的位置；
	// 当前玩家已破产时取第一个顺序号更大的活跃玩家
	next := active[0]
	for i, p := range active {
		if p.ID == game.CurrentTurnID {
			next = active[(i+1)%len(active)]
			break
		}
		if p.TurnOrder > mover.TurnOrder {
			next = p
			break
		}
	}

	// 回到更靠前的顺序号说明一圈结束
	if next.TurnOrder <= mover.TurnOrder {
		game.Round++
	}

	game.CurrentTurnID = next.ID
	game.TurnPhase = models.PhaseRolling
	game.Dice1 = nil
	game.Dice2 = nil
	if err := gameRepo.Update(ctx, game); err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseUpdate)
	}

	if err := e.appendLog(ctx, tx, game.ID, &next.ID,
		fmt.Sprintf("轮到 %s 的回合", next.Name)); err != nil {
		return nil, err
	}

	if next.IsAI {
		return &pendingTurn{gameID: game.ID, playerID: next.ID}, nil
	}
	return nil, nil
}

// saveTurnState 保存对局与玩家的当前回合状态（停在等待输入的阶段时用）
func (e *TurnEngine) saveTurnState(ctx context.Context, tx *gorm.DB, game *models.Game, player *models.Player) error {
	if err := repository.NewPlayerRepository(tx).Update(ctx, player); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}
	if err := repository.NewGameRepository(tx).Update(ctx, game); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}
	return nil
}

// appendLog 追加一条对局日志
func (e *TurnEngine) appendLog(ctx context.Context, tx *gorm.DB, gameID uint, playerID *uint, message string) error {
	err := repository.NewGameLogRepository(tx).Create(ctx, &models.GameLog{
		GameID:   gameID,
		PlayerID: playerID,
		Message:  message,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert)
	}
	return nil
}

// afterCommit 事务提交后的收尾：推送最新视图、调度AI回合或取消已结束对局的调度
func (e *TurnEngine) afterCommit(ctx context.Context, gameID uint, pending *pendingTurn) {
	view, err := e.GetGame(ctx, gameID)
	if err != nil {
		e.log.Warn("获取对局视图失败", zap.Uint("game_id", gameID), zap.Error(err))
	} else {
		if view.Status == models.GameStatusFinished {
			e.scheduler.Cancel(gameID)
		}
		if e.notifier != nil {
			e.notifier.GameUpdated(view)
		}
	}

	if pending != nil {
		gameID, playerID := pending.gameID, pending.playerID
		e.scheduler.Schedule(gameID, playerID, e.aiTurnDelay, func() {
			e.ProcessAITurn(gameID, playerID)
		})
	}
}

// notify 推送对局最新视图
func (e *TurnEngine) notify(ctx context.Context, gameID uint) {
	if e.notifier == nil {
		return
	}
	view, err := e.GetGame(ctx, gameID)
	if err != nil {
		e.log.Warn("获取对局视图失败", zap.Uint("game_id", gameID), zap.Error(err))
		return
	}
	e.notifier.GameUpdated(view)
}
