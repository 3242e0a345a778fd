package game

import (
	"context"
	"fmt"

	"github.com/wfunc/monopoly-game/internal/board"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/rules"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProcessAITurn 执行一次完整的AI回合：掷骰、移动、落地结算、回合交接。
// 只由调度器回调进入，绝不暴露给表现层。回调可能在对局结束或被放弃后
// 才触发，先重查状态，不满足条件时安静地退出。
func (e *TurnEngine) ProcessAITurn(gameID, playerID uint) {
	ctx := context.Background()

	var pending *pendingTurn
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gameRepo := repository.NewGameRepository(tx)
		playerRepo := repository.NewPlayerRepository(tx)

		game, err := gameRepo.FindByIDForUpdate(ctx, gameID)
		if err != nil {
			return errors.Wrap(err, errors.ErrNotFound)
		}

		// 过期回调防护：对局已终结、回合已易主或阶段不对时直接无操作
		if !game.IsPlaying() || game.CurrentTurnID != playerID || game.TurnPhase != models.PhaseRolling {
			return nil
		}

		player, err := playerRepo.FindByID(ctx, playerID)
		if err != nil {
			return errors.Wrap(err, errors.ErrNotFound)
		}
		if !player.IsAI {
			return nil
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

		pending, err = e.resolveLanding(ctx, tx, game, player, true)
		return err
	})
	if err != nil {
		e.log.Error("AI回合执行失败",
			zap.Uint("game_id", gameID),
			zap.Uint("player_id", playerID),
			zap.Error(err),
		)
		return
	}

	e.afterCommit(ctx, gameID, pending)
}

// aiDecideBuy AI就地评估购买决策并提交结果
func (e *TurnEngine) aiDecideBuy(ctx context.Context, tx *gorm.DB, game *models.Game, player *models.Player, property *models.Property, space board.Space) error {
	baseRent := 0
	if len(space.Rent) > 0 {
		baseRent = space.Rent[0]
	}

	e.rngMu.Lock()
	buy := player.Money >= space.Price &&
		rules.ShouldBuy(e.rng, player.AIDifficulty, player.Money, space.Price, baseRent)
	e.rngMu.Unlock()

	if !buy {
		return e.appendLog(ctx, tx, game.ID, &player.ID,
			fmt.Sprintf("%s 放弃购买 %s", player.Name, space.Name))
	}

	player.Money -= space.Price
	property.OwnerID = &player.ID
	if err := repository.NewPropertyRepository(tx).Update(ctx, property); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseUpdate)
	}

	return e.appendLog(ctx, tx, game.ID, &player.ID,
		fmt.Sprintf("%s 购买了 %s，花费 %d 贝里", player.Name, space.Name, space.Price))
}
