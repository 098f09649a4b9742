// Package entities 提供可视实体的工厂函数
package entities

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/citygrid/pkg/components"
	"github.com/decker502/citygrid/pkg/ecs"
	"github.com/decker502/citygrid/pkg/grid"
)

// CreateTileEntity 为一个格子创建可视实体
//
// 实体携带三个组件：
//   - TileComponent: 网格坐标（渲染和查找需要显式坐标）
//   - PositionComponent: 格子左上角的世界坐标（创建后不变）
//   - SpriteComponent: 当前绘制的图像（渲染同步器在区划变更时替换）
//
// 参数：
//   - em: ECS 实体管理器
//   - c: 网格坐标
//   - worldX, worldY: 格子左上角的世界坐标
//   - img: 初始区划对应的图像
//
// 返回：创建的实体ID
func CreateTileEntity(em *ecs.EntityManager, c grid.Coordinate, worldX, worldY float64, img *ebiten.Image) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.TileComponent{Row: c.Row, Col: c.Col})
	em.AddComponent(id, &components.PositionComponent{X: worldX, Y: worldY})
	em.AddComponent(id, &components.SpriteComponent{Image: img})
	return id
}
