package components

// PositionComponent 存储实体的世界坐标
// 对格子实体而言是格子左上角的世界坐标，由 TileToWorld 计算，创建后不变
type PositionComponent struct {
	X float64
	Y float64
}
