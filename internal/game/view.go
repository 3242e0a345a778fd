package game

import (
	"context"
	"time"

	"github.com/wfunc/monopoly-game/internal/board"
	"github.com/wfunc/monopoly-game/internal/errors"
	"github.com/wfunc/monopoly-game/internal/models"
	"github.com/wfunc/monopoly-game/internal/repository"
)

// GameView 对局完整视图：对局字段、按顺序排列的玩家、全部地产、
// 最近一段日志窗口与静态棋盘定义
type GameView struct {
	ID                 uint               `json:"id"`
	Status             string             `json:"status"`
	CurrentTurnID      uint               `json:"current_turn_id"`
	CurrentPlayerIndex int                `json:"current_player_index"` // 活跃玩家列表中的派生下标
	TurnPhase          string             `json:"turn_phase"`
	Dice1              *int               `json:"dice1,omitempty"`
	Dice2              *int               `json:"dice2,omitempty"`
	Winner             string             `json:"winner,omitempty"`
	Round              int                `json:"round"`
	CreatedAt          time.Time          `json:"created_at"`
	Players            []*models.Player   `json:"players"`
	Properties         []*models.Property `json:"properties"`
	Logs               []*models.GameLog  `json:"logs"`
	Board              []board.Space      `json:"board"`
}

// GetGame 组装对局视图
func (e *TurnEngine) GetGame(ctx context.Context, gameID uint) (*GameView, error) {
	gameRepo := repository.NewGameRepository(e.db)
	playerRepo := repository.NewPlayerRepository(e.db)
	propertyRepo := repository.NewPropertyRepository(e.db)
	logRepo := repository.NewGameLogRepository(e.db)

	game, err := gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound)
	}

	players, err := playerRepo.FindByGame(ctx, gameID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}

	properties, err := propertyRepo.FindByGame(ctx, gameID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}

	logs, err := logRepo.FindRecent(ctx, gameID, e.logWindow)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}

	// 当前回合玩家在活跃列表中的下标（客户端兼容字段）
	currentIndex := -1
	activeIndex := 0
	for _, p := range players {
		if !p.IsActive() {
			continue
		}
		if p.ID == game.CurrentTurnID {
			currentIndex = activeIndex
			break
		}
		activeIndex++
	}

	return &GameView{
		ID:                 game.ID,
		Status:             game.Status,
		CurrentTurnID:      game.CurrentTurnID,
		CurrentPlayerIndex: currentIndex,
		TurnPhase:          game.TurnPhase,
		Dice1:              game.Dice1,
		Dice2:              game.Dice2,
		Winner:             game.Winner,
		Round:              game.Round,
		CreatedAt:          game.CreatedAt,
		Players:            players,
		Properties:         properties,
		Logs:               logs,
		Board:              board.Spaces[:],
	}, nil
}

// GameSummary 对局列表项
type GameSummary struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	Round     int       `json:"round"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListGames 查询调用者的对局列表（新的在前）
func (e *TurnEngine) ListGames(ctx context.Context, hostID uint, pagination *repository.Pagination) ([]*GameSummary, error) {
	games, err := repository.NewGameRepository(e.db).FindByHost(ctx, hostID, pagination)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery)
	}

	summaries := make([]*GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, &GameSummary{
			ID:        g.ID,
			Status:    g.Status,
			Round:     g.Round,
			Winner:    g.Winner,
			CreatedAt: g.CreatedAt,
		})
	}
	return summaries, nil
}
