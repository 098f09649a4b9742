// Package grid 提供网格坐标数学与格子状态存储
//
// coords.go 提供坐标转换工具，处理世界坐标与离散格子索引之间的换算。
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统：
//   - **世界坐标**：浮点像素坐标，原点在窗口左上角（本作没有摄像机，
//     世界坐标与屏幕坐标重合；未来引入摄像机时只需在输入层做一次平移）
//   - **网格坐标**：(行, 列) 整数对，是寻址格子状态的唯一方式
//   - **线性索引**：row*width + col，存储层的一维下标
//
// 所有寻址都经过网格坐标这一单一事实来源，世界坐标只用于
// 输入解析和渲染摆放，从不直接寻址存储。
//
// # 核心转换公式
//
//	row = floor((worldY - originY) / tileSize)
//	col = floor((worldX - originX) / tileSize)
//
// 逆变换（格子左上角）：
//
//	worldX = originX + col * tileSize
//	worldY = originY + row * tileSize
package grid

import "math"

// Coordinate 网格坐标 (行, 列)
type Coordinate struct {
	Row int // 行索引，从上到下递增
	Col int // 列索引，从左到右递增
}

// WorldToTile 将世界坐标转换为网格坐标
//
// 参数：
//   - worldX, worldY: 世界坐标
//   - tileSize: 格子边长（像素）
//   - originX, originY: 网格左上角的世界坐标
//   - width, height: 网格的列数和行数
//
// 返回：
//   - Coordinate: 命中的网格坐标
//   - bool: 是否在有效网格范围内
//
// 落在网格外不是错误，是预期结果（点击了网格外的区域），
// 此时返回 ok=false，调用方应将其视为无操作。
func WorldToTile(worldX, worldY, tileSize, originX, originY float64, width, height int) (Coordinate, bool) {
	// 必须用 math.Floor 而不是 int() 截断：
	// 原点左侧/上方的坐标换算结果是负数，截断会把 (-0.5, 0) 错误归入第0列
	col := int(math.Floor((worldX - originX) / tileSize))
	row := int(math.Floor((worldY - originY) / tileSize))

	if col < 0 || col >= width || row < 0 || row >= height {
		return Coordinate{}, false
	}
	return Coordinate{Row: row, Col: col}, true
}

// TileToWorld 将网格坐标转换为格子左上角的世界坐标
// 全函数，对任意坐标都有定义（用于渲染摆放）
func TileToWorld(c Coordinate, tileSize, originX, originY float64) (worldX, worldY float64) {
	worldX = originX + float64(c.Col)*tileSize
	worldY = originY + float64(c.Row)*tileSize
	return worldX, worldY
}

// TileCenterToWorld 将网格坐标转换为格子中心的世界坐标
func TileCenterToWorld(c Coordinate, tileSize, originX, originY float64) (centerX, centerY float64) {
	x, y := TileToWorld(c, tileSize, originX, originY)
	return x + tileSize/2, y + tileSize/2
}

// ToLinearIndex 将网格坐标转换为线性存储索引
// 在有效坐标空间上与 FromLinearIndex 互为双射
func ToLinearIndex(c Coordinate, width int) int {
	return c.Row*width + c.Col
}

// FromLinearIndex 将线性存储索引转换回网格坐标
func FromLinearIndex(index, width int) Coordinate {
	return Coordinate{Row: index / width, Col: index % width}
}
