// Package rules 纯规则计算：骰子、移动、租金、税收与AI购买决策。
// 除骰子与AI决策依赖注入的随机源外，所有函数对相同输入产生相同输出。
package rules

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/monopoly-game/internal/board"
)

const (
	// StartingMoney 玩家初始资金
	StartingMoney = 1500
	// GoBonus 经过起点的奖励
	GoBonus = 200
	// UtilityFlatRent 公共事业固定租金（简化规则，不按骰子点数计算）
	UtilityFlatRent = 50
	// HotelRentIndex 租金表中旅馆档的索引
	HotelRentIndex = 5
)

// Roller 骰子接口（两枚独立的六面骰）
type Roller interface {
	Roll() (int, int)
}

// randRoller 基于math/rand的骰子实现
type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller 创建时间种子的骰子
func NewRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller 创建固定种子的骰子（测试用）
func NewSeededRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll 掷两枚骰子，各自取值1-6
func (r *randRoller) Roll() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(6) + 1, r.rng.Intn(6) + 1
}

// MoveResult 移动计算结果
type MoveResult struct {
	NewPosition int
	PassedGo    bool
}

// Move 计算移动后的位置与是否经过起点。
// 经过起点通过绕圈回折判断（newPosition < position）；
// 正好落在起点不触发奖励，这是沿用的已知边界行为。
func Move(position, diceTotal int) MoveResult {
	newPosition := (position + diceTotal) % board.Size
	return MoveResult{
		NewPosition: newPosition,
		PassedGo:    newPosition < position,
	}
}

// Rent 按格子类型计算租金。
// 地产按房屋数查租金表，旅馆取第6档；
// 船只固定取基础租金、公共事业取固定值（均为简化规则，不按持有数计算）。
func Rent(space board.Space, houses int, hasHotel bool) int {
	switch space.Type {
	case board.TypeUtility:
		return UtilityFlatRent
	case board.TypeRailroad:
		return space.Rent[0]
	case board.TypeProperty:
		index := houses
		if hasHotel {
			index = HotelRentIndex
		}
		if index >= len(space.Rent) {
			index = len(space.Rent) - 1
		}
		return space.Rent[index]
	default:
		return 0
	}
}

// TaxAmount 税收格的固定扣款额
func TaxAmount(space board.Space) int {
	if len(space.Rent) == 0 {
		return 0
	}
	return space.Rent[0]
}

// DeductClamped 扣款并将余额钳制在零以上
func DeductClamped(money, amount int) int {
	if money-amount < 0 {
		return 0
	}
	return money - amount
}

// ShouldBuy AI购买决策。调用方须先保证 money >= price。
//   - easy：随机购买，越有钱越倾向买（概率 0.3 + 0.3*资金比）
//   - medium：价格低于资金四成时以0.7概率买
//   - hard：价格低于资金三成且基础租金回报率超过5%时以0.8概率买
//   - 其他：对半概率
func ShouldBuy(rng *rand.Rand, difficulty string, money, price, baseRent int) bool {
	if money <= 0 {
		return false
	}

	switch difficulty {
	case "easy":
		moneyRatio := float64(money) / float64(StartingMoney)
		return rng.Float64() < 0.3+moneyRatio*0.3
	case "medium":
		priceRatio := float64(price) / float64(money)
		return priceRatio < 0.4 && rng.Float64() < 0.7
	case "hard":
		priceRatio := float64(price) / float64(money)
		rentToPrice := float64(baseRent) / float64(price)
		return priceRatio < 0.3 && rentToPrice > 0.05 && rng.Float64() < 0.8
	default:
		return rng.Float64() < 0.5
	}
}
