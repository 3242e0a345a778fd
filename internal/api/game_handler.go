package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/monopoly-game/internal/game"
	"github.com/wfunc/monopoly-game/internal/middleware"
	"github.com/wfunc/monopoly-game/internal/repository"
	"go.uber.org/zap"
)

// GameHandler 对局处理器
type GameHandler struct {
	engine *game.TurnEngine
	log    *zap.Logger
}

// NewGameHandler 创建对局处理器
func NewGameHandler(engine *game.TurnEngine, log *zap.Logger) *GameHandler {
	return &GameHandler{
		engine: engine,
		log:    log,
	}
}

// CreateGameRequest 创建对局请求
type CreateGameRequest struct {
	Opponents []game.AIOpponent `json:"opponents" binding:"required"`
}

// CreateGame 创建对局并立即开始
func (h *GameHandler) CreateGame(c *gin.Context) {
	userID, username, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	gameID, err := h.engine.CreateGame(c.Request.Context(), userID, username, req.Opponents)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.engine.GetGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// ListGames 查询自己的对局列表
func (h *GameHandler) ListGames(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pagination := repository.NewPagination(page, pageSize)

	games, err := h.engine.ListGames(c.Request.Context(), userID, pagination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games":      games,
		"pagination": pagination,
	})
}

// GetGame 查询对局完整视图
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}

	view, err := h.engine.GetGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RollDice 掷骰子并移动
func (h *GameHandler) RollDice(c *gin.Context) {
	h.turnAction(c, h.engine.RollDice)
}

// BuyProperty 购买当前停留的地产
func (h *GameHandler) BuyProperty(c *gin.Context) {
	h.turnAction(c, h.engine.BuyProperty)
}

// SkipBuying 放弃购买
func (h *GameHandler) SkipBuying(c *gin.Context) {
	h.turnAction(c, h.engine.SkipBuying)
}

// PayRent 确认支付租金
func (h *GameHandler) PayRent(c *gin.Context) {
	h.turnAction(c, h.engine.PayRent)
}

// turnAction 回合操作的公共壳：鉴权、执行、返回最新视图
func (h *GameHandler) turnAction(c *gin.Context, action func(ctx context.Context, gameID, userID uint) error) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}

	if err := action(c.Request.Context(), gameID, userID); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.engine.GetGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// identity 从上下文取当前用户
func (h *GameHandler) identity(c *gin.Context) (uint, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "未登录",
		})
		return 0, "", false
	}
	return userID, c.GetString("username"), true
}

// gameID 解析路径中的对局ID
func (h *GameHandler) gameID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_GAME_ID",
			Message: "无效的对局ID",
		})
		return 0, false
	}
	return uint(id), true
}
