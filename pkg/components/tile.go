package components

// TileComponent 记录可视实体对应的网格坐标
// 位置信息在存储层是隐式的（线性索引），渲染和查找需要显式坐标
type TileComponent struct {
	Row int // 行索引
	Col int // 列索引
}
