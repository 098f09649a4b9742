package grid

import (
	"errors"
	"fmt"

	"github.com/decker502/citygrid/pkg/zone"
)

// ErrOutOfBounds 坐标超出网格范围
// 交互层会把它作为无操作局部消化，不会上抛到帧循环
var ErrOutOfBounds = errors.New("coordinate out of grid bounds")

// TileStore 网格状态的唯一可写持有者
//
// 职责：
//   - 持有每个格子的区划状态（按线性索引存储）
//   - 带边界检查的 Get/Set
//   - 维护"自上次渲染以来变脏"的格子集合，供渲染同步器按变更量消费
//
// 架构说明：
//   - 其他组件只通过 Get/Set 或 ForEachDirty 访问状态，从不直接改写
//   - 脏集合用标志位数组 + 排队队列实现：标志位保证同一格子在一次
//     排空周期内至多入队一次，队列保证排空成本与变更数成正比而
//     与网格大小无关
type TileStore struct {
	width  int
	height int
	zones  []zone.Kind

	dirty      []bool       // 按线性索引的脏标志
	dirtyQueue []Coordinate // 待排空的脏格子（入队顺序）
}

// NewTileStore 创建网格存储，所有格子初始化为 initial 区划
//
// 参数：
//   - width, height: 网格的列数和行数，必须为正
//   - initial: 所有格子的初始区划
//
// 返回：
//   - *TileStore: 创建的存储
//   - error: 尺寸非正时返回错误（配置完整性问题，启动时致命）
func NewTileStore(width, height int, initial zone.Kind) (*TileStore, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d: dimensions must be positive", width, height)
	}

	zones := make([]zone.Kind, width*height)
	for i := range zones {
		zones[i] = initial
	}

	return &TileStore{
		width:  width,
		height: height,
		zones:  zones,
		dirty:  make([]bool, width*height),
	}, nil
}

// Width 返回网格列数
func (ts *TileStore) Width() int {
	return ts.width
}

// Height 返回网格行数
func (ts *TileStore) Height() int {
	return ts.height
}

// Contains 检查坐标是否在网格范围内
func (ts *TileStore) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < ts.height && c.Col >= 0 && c.Col < ts.width
}

// Get 读取格子的当前区划
// 坐标越界时返回 ErrOutOfBounds
func (ts *TileStore) Get(c Coordinate) (zone.Kind, error) {
	if !ts.Contains(c) {
		return zone.KindInvalid, fmt.Errorf("get (%d,%d): %w", c.Row, c.Col, ErrOutOfBounds)
	}
	return ts.zones[ToLinearIndex(c, ts.width)], nil
}

// Set 覆写格子的区划并标记其为脏
// 坐标越界时返回 ErrOutOfBounds，否则总是成功
func (ts *TileStore) Set(c Coordinate, k zone.Kind) error {
	if !ts.Contains(c) {
		return fmt.Errorf("set (%d,%d): %w", c.Row, c.Col, ErrOutOfBounds)
	}

	i := ToLinearIndex(c, ts.width)
	ts.zones[i] = k
	ts.markDirty(i, c)
	return nil
}

func (ts *TileStore) markDirty(i int, c Coordinate) {
	// 标志位保证一次排空周期内同一格子至多入队一次：
	// 排空前变更两次的格子只被访问一次，且读到的是最新区划
	if !ts.dirty[i] {
		ts.dirty[i] = true
		ts.dirtyQueue = append(ts.dirtyQueue, c)
	}
}

// ForEachDirty 排空脏集合
//
// 对自上次排空以来每个变更过的格子调用一次 visit，传入其坐标和
// 最新区划；访问的同时清除脏标记。一次性消费：排空后脏集合为空，
// 直到下一次 Set 才会重新入队。
func (ts *TileStore) ForEachDirty(visit func(Coordinate, zone.Kind)) {
	if len(ts.dirtyQueue) == 0 {
		return
	}

	queue := ts.dirtyQueue
	ts.dirtyQueue = nil

	for _, c := range queue {
		i := ToLinearIndex(c, ts.width)
		ts.dirty[i] = false
		visit(c, ts.zones[i])
	}
}

// DirtyCount 返回当前待排空的脏格子数量
func (ts *TileStore) DirtyCount() int {
	return len(ts.dirtyQueue)
}

// Zones 返回所有格子区划的副本（按线性索引），用于存档和快照导出
func (ts *TileStore) Zones() []zone.Kind {
	out := make([]zone.Kind, len(ts.zones))
	copy(out, ts.zones)
	return out
}

// Restore 用给定的区划序列整体替换网格状态，并把所有格子标记为脏
// （读档后渲染层需要全量刷新一次）
// 序列长度与网格不匹配时返回错误
func (ts *TileStore) Restore(zones []zone.Kind) error {
	if len(zones) != len(ts.zones) {
		return fmt.Errorf("restore: got %d tiles, grid needs %d", len(zones), len(ts.zones))
	}

	copy(ts.zones, zones)
	for i := range ts.dirty {
		ts.dirty[i] = false
	}
	ts.dirtyQueue = ts.dirtyQueue[:0]
	for i := range ts.zones {
		c := FromLinearIndex(i, ts.width)
		ts.markDirty(i, c)
	}
	return nil
}
