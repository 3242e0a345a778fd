package board

// Spaces 40格棋盘定义，0号为起点（风车村），10号为推进城
// 租金表：地产为6档（0房..4房、旅馆），船只按持有数，公共事业为倍率，税收为固定额
var Spaces = [Size]Space{
	{ID: 0, Name: "风车村（起点）", Type: TypeGo},
	{ID: 1, Name: "哥亚王国", Type: TypeProperty, Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, Color: "brown"},
	{ID: 2, Name: "伙伴宝箱", Type: TypeCommunityChest},
	{ID: 3, Name: "谢尔兹镇", Type: TypeProperty, Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, Color: "brown"},
	{ID: 4, Name: "海军税收", Type: TypeTax, Rent: []int{200}},
	{ID: 5, Name: "黄金梅利号", Type: TypeRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 6, Name: "橘子镇", Type: TypeProperty, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, Color: "lightblue"},
	{ID: 7, Name: "伟大航路机会", Type: TypeChance},
	{ID: 8, Name: "西罗普村", Type: TypeProperty, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, Color: "lightblue"},
	{ID: 9, Name: "海上餐厅巴拉蒂", Type: TypeProperty, Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, Color: "lightblue"},
	{ID: 10, Name: "推进城（探访）", Type: TypeJail},
	{ID: 11, Name: "可可亚西村", Type: TypeProperty, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, Color: "pink"},
	{ID: 12, Name: "电话虫通信社", Type: TypeUtility, Price: 150, Rent: []int{4, 10}},
	{ID: 13, Name: "阿龙公园", Type: TypeProperty, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, Color: "pink"},
	{ID: 14, Name: "罗格镇", Type: TypeProperty, Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, Color: "pink"},
	{ID: 15, Name: "千阳号", Type: TypeRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 16, Name: "威士忌山峰", Type: TypeProperty, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, Color: "orange"},
	{ID: 17, Name: "伙伴宝箱", Type: TypeCommunityChest},
	{ID: 18, Name: "小花园", Type: TypeProperty, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, Color: "orange"},
	{ID: 19, Name: "磁鼓岛", Type: TypeProperty, Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, Color: "orange"},
	{ID: 20, Name: "无风带（免费停留）", Type: TypeFreeParking},
	{ID: 21, Name: "阿拉巴斯坦", Type: TypeProperty, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, Color: "red"},
	{ID: 22, Name: "伟大航路机会", Type: TypeChance},
	{ID: 23, Name: "加雅岛", Type: TypeProperty, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, Color: "red"},
	{ID: 24, Name: "空岛", Type: TypeProperty, Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, Color: "red"},
	{ID: 25, Name: "海上列车火箭人号", Type: TypeRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 26, Name: "水之都", Type: TypeProperty, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, Color: "yellow"},
	{ID: 27, Name: "司法岛", Type: TypeProperty, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, Color: "yellow"},
	{ID: 28, Name: "造船厂一号渠", Type: TypeUtility, Price: 150, Rent: []int{4, 10}},
	{ID: 29, Name: "恐怖三桅帆船", Type: TypeProperty, Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, Color: "yellow"},
	{ID: 30, Name: "押送推进城", Type: TypeGoToJail},
	{ID: 31, Name: "香波地群岛", Type: TypeProperty, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, Color: "green"},
	{ID: 32, Name: "女儿岛", Type: TypeProperty, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, Color: "green"},
	{ID: 33, Name: "伙伴宝箱", Type: TypeCommunityChest},
	{ID: 34, Name: "马林梵多", Type: TypeProperty, Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, Color: "green"},
	{ID: 35, Name: "白鲸莫比迪克号", Type: TypeRailroad, Price: 200, Rent: []int{25, 50, 100, 200}},
	{ID: 36, Name: "伟大航路机会", Type: TypeChance},
	{ID: 37, Name: "佐乌", Type: TypeProperty, Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, Color: "darkblue"},
	{ID: 38, Name: "天上金", Type: TypeTax, Rent: []int{100}},
	{ID: 39, Name: "拉夫德鲁", Type: TypeProperty, Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, Color: "darkblue"},
}
