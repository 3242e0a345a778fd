package models

import (
	"time"
)

// 游戏状态
const (
	GameStatusWaiting  = "waiting"  // 等待开始
	GameStatusPlaying  = "playing"  // 进行中
	GameStatusFinished = "finished" // 已结束
)

// 回合阶段
const (
	PhaseRolling = "rolling" // 等待掷骰子
	PhaseMoving  = "moving"  // 移动中（瞬态，落地结算后立即离开）
	PhaseAction  = "action"  // 卡片效果（预留，当前无转换进入）
	PhaseBuying  = "buying"  // 等待购买决定
	PhasePaying  = "paying"  // 等待确认支付租金
)

// AI难度
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Game 对局表
type Game struct {
	BaseModel
	HostID        uint   `gorm:"not null;index" json:"host_id"`
	Status        string `gorm:"size:20;default:'waiting'" json:"status"` // waiting, playing, finished
	CurrentTurnID uint   `gorm:"default:0" json:"current_turn_id"`        // 当前回合玩家的稳定ID
	TurnPhase     string `gorm:"size:20;default:'rolling'" json:"turn_phase"`
	Dice1         *int   `json:"dice1,omitempty"` // 本回合骰子，新回合开始时清空
	Dice2         *int   `json:"dice2,omitempty"`
	Winner        string `gorm:"size:100" json:"winner,omitempty"`
	Round         int    `gorm:"default:1" json:"round"`

	// 关联（注意：不直接嵌入，查询时按需加载）
	Players    []Player   `gorm:"foreignKey:GameID" json:"players,omitempty"`
	Properties []Property `gorm:"foreignKey:GameID" json:"properties,omitempty"`
}

// TableName 指定Game表名
func (Game) TableName() string {
	return "games"
}

// IsPlaying 检查对局是否进行中
func (g *Game) IsPlaying() bool {
	return g.Status == GameStatusPlaying
}

// DiceTotal 返回本回合骰子点数之和（未掷返回0）
func (g *Game) DiceTotal() int {
	if g.Dice1 == nil || g.Dice2 == nil {
		return 0
	}
	return *g.Dice1 + *g.Dice2
}

// Player 玩家表
type Player struct {
	BaseModel
	GameID       uint   `gorm:"not null;index" json:"game_id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	IsAI         bool   `gorm:"default:false" json:"is_ai"`
	AIDifficulty string `gorm:"size:10" json:"ai_difficulty,omitempty"` // easy, medium, hard（仅AI）
	Position     int    `gorm:"default:0" json:"position"`              // 0-39
	Money        int    `gorm:"default:1500" json:"money"`
	IsInJail     bool   `gorm:"default:false" json:"is_in_jail"`
	JailTurns    int    `gorm:"default:0" json:"jail_turns"`
	IsBankrupt   bool   `gorm:"default:false" json:"is_bankrupt"`
	TurnOrder    int    `gorm:"not null" json:"turn_order"` // 固定回合顺序：人类为0，AI为1..N
}

// TableName 指定Player表名
func (Player) TableName() string {
	return "players"
}

// IsActive 检查玩家是否仍在回合轮换中
func (p *Player) IsActive() bool {
	return !p.IsBankrupt
}

// Property 地产表（每个可购买格子一条记录，开局创建）
type Property struct {
	BaseModel
	GameID      uint  `gorm:"not null;index:idx_game_space,unique" json:"game_id"`
	SpaceID     int   `gorm:"not null;index:idx_game_space,unique" json:"space_id"` // 棋盘格子索引
	OwnerID     *uint `gorm:"index" json:"owner_id,omitempty"`                      // 空 = 无主
	Houses      int   `gorm:"default:0" json:"houses"`                              // 0-4
	HasHotel    bool  `gorm:"default:false" json:"has_hotel"`
	IsMortgaged bool  `gorm:"default:false" json:"is_mortgaged"`
}

// TableName 指定Property表名
func (Property) TableName() string {
	return "properties"
}

// IsOwned 检查地产是否有主
func (p *Property) IsOwned() bool {
	return p.OwnerID != nil
}

// OwnedBy 检查地产是否属于指定玩家
func (p *Property) OwnedBy(playerID uint) bool {
	return p.OwnerID != nil && *p.OwnerID == playerID
}

// GameLog 对局日志表（只追加，不修改不删除）
type GameLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"game_id"`
	PlayerID  *uint     `json:"player_id,omitempty"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定GameLog表名
func (GameLog) TableName() string {
	return "game_logs"
}
