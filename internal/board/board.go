package board

// SpaceType 格子类型
type SpaceType string

const (
	TypeGo             SpaceType = "go"             // 起点
	TypeProperty       SpaceType = "property"       // 地产
	TypeRailroad       SpaceType = "railroad"       // 船只（铁路位）
	TypeUtility        SpaceType = "utility"        // 公共事业
	TypeTax            SpaceType = "tax"            // 税收
	TypeChance         SpaceType = "chance"         // 机会卡
	TypeCommunityChest SpaceType = "communitychest" // 公共宝箱卡
	TypeJail           SpaceType = "jail"           // 监狱（探访）
	TypeGoToJail       SpaceType = "gotojail"       // 入狱
	TypeFreeParking    SpaceType = "freeparking"    // 免费停留
)

const (
	// Size 棋盘格子总数
	Size = 40
	// JailPosition 监狱格子位置（推进城）
	JailPosition = 10
)

// Space 棋盘格子定义（静态只读，所有对局共享）
type Space struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Type  SpaceType `json:"type"`
	Price int       `json:"price"`           // 不可购买的格子为0
	Rent  []int     `json:"rent"`            // 按改良等级索引：0房..4房、旅馆；税收格只有一项
	Color string    `json:"color,omitempty"` // 同色组（垄断加成预留，当前租金计算未使用）
}

// IsOwnable 检查格子类型是否可购买
func (t SpaceType) IsOwnable() bool {
	switch t {
	case TypeProperty, TypeRailroad, TypeUtility:
		return true
	default:
		return false
	}
}

// SpaceAt 按位置查找格子（位置按棋盘大小取模）
func SpaceAt(position int) Space {
	return Spaces[((position%Size)+Size)%Size]
}

// OwnableSpaces 返回所有可购买的格子
func OwnableSpaces() []Space {
	ownable := make([]Space, 0, 28)
	for _, space := range Spaces {
		if space.Type.IsOwnable() {
			ownable = append(ownable, space)
		}
	}
	return ownable
}
