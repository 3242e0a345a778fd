package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBoard_Size 测试棋盘结构：40格、ID连续
func TestBoard_Size(t *testing.T) {
	assert.Len(t, Spaces, Size)
	for i, space := range Spaces {
		assert.Equal(t, i, space.ID)
		assert.NotEmpty(t, space.Name)
	}
}

// TestBoard_OwnableCount 测试可购买格子数量：22地产+4船只+2公共事业
func TestBoard_OwnableCount(t *testing.T) {
	counts := map[SpaceType]int{}
	for _, space := range Spaces {
		counts[space.Type]++
	}

	assert.Equal(t, 22, counts[TypeProperty])
	assert.Equal(t, 4, counts[TypeRailroad])
	assert.Equal(t, 2, counts[TypeUtility])
	assert.Len(t, OwnableSpaces(), 28)
}

// TestBoard_SpecialSpaces 测试特殊格子位置
func TestBoard_SpecialSpaces(t *testing.T) {
	assert.Equal(t, TypeGo, Spaces[0].Type)
	assert.Equal(t, TypeJail, Spaces[JailPosition].Type)
	assert.Equal(t, TypeFreeParking, Spaces[20].Type)
	assert.Equal(t, TypeGoToJail, Spaces[30].Type)
}

// TestBoard_RentTables 测试租金表：地产6档、可购买格子标价为正
func TestBoard_RentTables(t *testing.T) {
	for _, space := range Spaces {
		switch space.Type {
		case TypeProperty:
			assert.Len(t, space.Rent, 6, "space %d %s", space.ID, space.Name)
			assert.Greater(t, space.Price, 0)
		case TypeRailroad, TypeUtility:
			assert.Greater(t, space.Price, 0)
			assert.NotEmpty(t, space.Rent)
		case TypeTax:
			assert.Len(t, space.Rent, 1)
			assert.Zero(t, space.Price)
		default:
			assert.Zero(t, space.Price)
		}
	}
}

// TestSpaceAt 测试按位置查找（含取模回绕）
func TestSpaceAt(t *testing.T) {
	assert.Equal(t, Spaces[0], SpaceAt(0))
	assert.Equal(t, Spaces[39], SpaceAt(39))
	assert.Equal(t, Spaces[3], SpaceAt(43))
	assert.Equal(t, Spaces[39], SpaceAt(-1))
}

// TestIsOwnable 测试可购买类型判定
func TestIsOwnable(t *testing.T) {
	assert.True(t, TypeProperty.IsOwnable())
	assert.True(t, TypeRailroad.IsOwnable())
	assert.True(t, TypeUtility.IsOwnable())
	assert.False(t, TypeGo.IsOwnable())
	assert.False(t, TypeTax.IsOwnable())
	assert.False(t, TypeGoToJail.IsOwnable())
}

// TestDifficultyFor 测试AI名册难度查找
func TestDifficultyFor(t *testing.T) {
	assert.Equal(t, "easy", DifficultyFor("蒙奇·D·路飞"))
	assert.Equal(t, "hard", DifficultyFor("娜美"))
	assert.Equal(t, "medium", DifficultyFor("不在名册的人"))
}

// TestCardDecks 测试卡组静态数据
func TestCardDecks(t *testing.T) {
	assert.Len(t, ChanceCards, 8)
	assert.Len(t, CommunityChestCards, 8)
	for _, card := range ChanceCards {
		assert.Equal(t, CardChance, card.Kind)
		assert.NotEmpty(t, card.Text)
	}
	for _, card := range CommunityChestCards {
		assert.Equal(t, CardCommunityChest, card.Kind)
	}
}
