package board

// CardKind 卡片类型
type CardKind string

const (
	CardChance         CardKind = "chance"         // 伟大航路机会卡
	CardCommunityChest CardKind = "communitychest" // 伙伴宝箱卡
)

// Card 抽取卡片定义（静态数据；action阶段预留，当前没有转换会抽卡）
type Card struct {
	Kind   CardKind `json:"kind"`
	Text   string   `json:"text"`
	Amount int      `json:"amount"` // 正数加钱，负数扣钱，0为无金钱效果
}

// ChanceCards 伟大航路机会卡组
var ChanceCards = []Card{
	{Kind: CardChance, Text: "顺风航行！前进途中发现宝藏，获得150贝里", Amount: 150},
	{Kind: CardChance, Text: "遭遇海王类袭击，修船费用50贝里", Amount: -50},
	{Kind: CardChance, Text: "悬赏金上涨！获得100贝里", Amount: 100},
	{Kind: CardChance, Text: "被海军巡逻队罚款75贝里", Amount: -75},
	{Kind: CardChance, Text: "在酒馆听到情报，免费获得航海图", Amount: 0},
	{Kind: CardChance, Text: "飓风来袭，货物受损，损失100贝里", Amount: -100},
	{Kind: CardChance, Text: "打捞到沉船财宝，获得200贝里", Amount: 200},
	{Kind: CardChance, Text: "记录指针完成记录，平安无事", Amount: 0},
}

// CommunityChestCards 伙伴宝箱卡组
var CommunityChestCards = []Card{
	{Kind: CardCommunityChest, Text: "伙伴们凑钱为你庆生，获得100贝里", Amount: 100},
	{Kind: CardCommunityChest, Text: "请全船吃宴席，支付50贝里", Amount: -50},
	{Kind: CardCommunityChest, Text: "帮助村民击退山贼，获得酬谢120贝里", Amount: 120},
	{Kind: CardCommunityChest, Text: "船医的药品补给费25贝里", Amount: -25},
	{Kind: CardCommunityChest, Text: "航海士发现近路，节省补给80贝里", Amount: 80},
	{Kind: CardCommunityChest, Text: "赌局失利，损失60贝里", Amount: -60},
	{Kind: CardCommunityChest, Text: "收到家乡来信，士气大振", Amount: 0},
	{Kind: CardCommunityChest, Text: "修理厨房设备，支付40贝里", Amount: -40},
}

// AICharacter AI对手角色定义
type AICharacter struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

// DifficultyFor 按角色名查名册难度，名册外的名字默认medium
func DifficultyFor(name string) string {
	for _, c := range AICharacters {
		if c.Name == name {
			return c.Difficulty
		}
	}
	return "medium"
}

// AICharacters 可选的AI对手名册
var AICharacters = []AICharacter{
	{Name: "蒙奇·D·路飞", Difficulty: "easy", Description: "鲁莽冲动，想买就买"},
	{Name: "罗罗诺亚·索隆", Difficulty: "medium", Description: "稳健可靠"},
	{Name: "娜美", Difficulty: "hard", Description: "精打细算的航海士"},
	{Name: "山治", Difficulty: "medium", Description: "张弛有度"},
	{Name: "托尼托尼·乔巴", Difficulty: "easy", Description: "天真轻信"},
	{Name: "妮可·罗宾", Difficulty: "hard", Description: "冷静的战略家"},
	{Name: "弗兰奇", Difficulty: "medium", Description: "大胆但不失分寸"},
	{Name: "布鲁克", Difficulty: "easy", Description: "随遇而安的幸运儿"},
}
