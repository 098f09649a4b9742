package systems

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/citygrid/pkg/components"
	"github.com/decker502/citygrid/pkg/ecs"
	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/zone"
)

// ZoneResolver 区划资源解析接口
// 生产实现是 game.TileAtlas；测试中用桩实现替代
type ZoneResolver interface {
	// Resolve 返回区划对应的图像句柄
	// 区划未映射时返回 game.ErrUnmappedZone
	Resolve(k zone.Kind) (*ebiten.Image, error)
}

// RenderSyncSystem 把网格状态的变更同步到可视实体
//
// 每帧在所有输入路由完成后运行一次：排空存储的脏集合，为每个
// 变更过的格子解析新区划的图像并替换其精灵组件。未变更的格子
// 零开销，同步成本与变更数成正比而与网格大小无关。
type RenderSyncSystem struct {
	entityManager *ecs.EntityManager
	store         *grid.TileStore
	resolver      ZoneResolver

	// 线性索引 → 格子实体ID，场景初始化时注册
	tileEntities []ecs.EntityID
}

// NewRenderSyncSystem 创建渲染同步系统
func NewRenderSyncSystem(em *ecs.EntityManager, store *grid.TileStore, resolver ZoneResolver) *RenderSyncSystem {
	return &RenderSyncSystem{
		entityManager: em,
		store:         store,
		resolver:      resolver,
		tileEntities:  make([]ecs.EntityID, store.Width()*store.Height()),
	}
}

// Register 登记格子对应的可视实体
// 场景在创建格子实体时调用一次
func (s *RenderSyncSystem) Register(c grid.Coordinate, id ecs.EntityID) {
	s.tileEntities[grid.ToLinearIndex(c, s.store.Width())] = id
}

// Sync 排空脏集合并更新对应实体的精灵
//
// 区划无法解析资源时返回错误（配置完整性问题）。同步不会
// 中途放弃：其余脏格子照常更新，错误在全部处理后一并返回，
// 避免部分格子因一次失败而卡在陈旧视觉上。
func (s *RenderSyncSystem) Sync() error {
	var firstErr error

	s.store.ForEachDirty(func(c grid.Coordinate, k zone.Kind) {
		img, err := s.resolver.Resolve(k)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("sync tile (%d,%d): %w", c.Row, c.Col, err)
			}
			return
		}

		id := s.tileEntities[grid.ToLinearIndex(c, s.store.Width())]
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("sync tile (%d,%d): entity %d has no sprite component", c.Row, c.Col, id)
			}
			return
		}
		sprite.Image = img
	})

	return firstErr
}
