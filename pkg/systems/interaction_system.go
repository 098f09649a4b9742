// Package systems 提供按职责划分的游戏系统
package systems

import (
	"errors"
	"log"

	"github.com/decker502/citygrid/pkg/game"
	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/utils"
	"github.com/decker502/citygrid/pkg/zone"
)

// InteractionSystem 处理指针输入到网格状态变更的路由
//
// 每次有效点击执行固定流程：屏幕坐标 → 网格坐标 → 读当前区划
// → 计算后继 → 写回。恰好一读一写，不合并、不批处理：连续点击
// 同一格子 N 次就推进 N 步（对区划数取模），这是有意的循环行为。
//
// 点击落在网格外是预期结果，静默忽略（记日志但不报错）。
type InteractionSystem struct {
	store     *grid.TileStore
	zones     *zone.Set
	gameState *game.GameState

	tileSize float64
	originX  float64
	originY  float64
}

// NewInteractionSystem 创建交互系统
//
// 参数：
//   - store: 网格存储（状态的唯一可写持有者）
//   - zones: 区划集合（切换策略）
//   - gs: 全局游戏状态（暂停时屏蔽交互）
//   - tileSize, originX, originY: 网格几何参数（来自配置快照）
func NewInteractionSystem(store *grid.TileStore, zones *zone.Set, gs *game.GameState, tileSize, originX, originY float64) *InteractionSystem {
	return &InteractionSystem{
		store:     store,
		zones:     zones,
		gameState: gs,
		tileSize:  tileSize,
		originX:   originX,
		originY:   originY,
	}
}

// Update 轮询本帧的指针输入并路由
// 每帧调用一次，必须先于渲染同步执行
func (s *InteractionSystem) Update() {
	// 暂停时屏蔽网格交互
	if s.gameState != nil && s.gameState.IsPaused {
		return
	}

	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}
	s.HandleClick(float64(x), float64(y))
}

// HandleClick 处理一次指针点击
//
// 返回本次点击是否改变了某个格子的区划。
// 拆出独立方法是为了让路由逻辑可以脱离 ebiten 输入设备测试。
func (s *InteractionSystem) HandleClick(worldX, worldY float64) bool {
	c, ok := grid.WorldToTile(worldX, worldY, s.tileSize, s.originX, s.originY, s.store.Width(), s.store.Height())
	if !ok {
		// 网格外的点击：定义明确的无操作
		log.Printf("[InteractionSystem] click (%.1f, %.1f) outside grid, ignored", worldX, worldY)
		return false
	}

	current, err := s.store.Get(c)
	if err != nil {
		// WorldToTile 已做边界检查，这里只可能是内部不一致
		if errors.Is(err, grid.ErrOutOfBounds) {
			log.Printf("[InteractionSystem] resolved coordinate (%d,%d) rejected by store: %v", c.Row, c.Col, err)
			return false
		}
		log.Printf("[InteractionSystem] get (%d,%d): %v", c.Row, c.Col, err)
		return false
	}

	next := s.zones.Successor(current)
	if err := s.store.Set(c, next); err != nil {
		log.Printf("[InteractionSystem] set (%d,%d): %v", c.Row, c.Col, err)
		return false
	}

	log.Printf("[InteractionSystem] tile (%d,%d): %s -> %s", c.Row, c.Col, s.zones.ID(current), s.zones.ID(next))
	return true
}

// HoveredTile 返回指针当前悬停的格子
// 指针在网格外时返回 ok=false
func (s *InteractionSystem) HoveredTile(worldX, worldY float64) (grid.Coordinate, bool) {
	return grid.WorldToTile(worldX, worldY, s.tileSize, s.originX, s.originY, s.store.Width(), s.store.Height())
}
