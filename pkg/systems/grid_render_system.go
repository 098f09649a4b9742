package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/citygrid/pkg/components"
	"github.com/decker502/citygrid/pkg/ecs"
	"github.com/decker502/citygrid/pkg/grid"
)

// GridRenderSystem 绘制网格的可视实体和覆盖层
//
// 职责范围：
//   - 格子精灵：按 PositionComponent 原样绘制 SpriteComponent
//   - 网格线覆盖层（可开关）
//   - 悬停高亮框
//
// 格子互不重叠，不需要 z 排序；绘制顺序无关紧要。
type GridRenderSystem struct {
	entityManager *ecs.EntityManager

	gridWidth  int
	gridHeight int
	tileSize   float64
	originX    float64
	originY    float64
}

// 覆盖层颜色
var (
	gridLineColor  = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	highlightColor = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// NewGridRenderSystem 创建网格渲染系统
func NewGridRenderSystem(em *ecs.EntityManager, gridWidth, gridHeight int, tileSize, originX, originY float64) *GridRenderSystem {
	return &GridRenderSystem{
		entityManager: em,
		gridWidth:     gridWidth,
		gridHeight:    gridHeight,
		tileSize:      tileSize,
		originX:       originX,
		originY:       originY,
	}
}

// Draw 绘制所有格子精灵
func (s *GridRenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](s.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if sprite.Image == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(pos.X, pos.Y)
		screen.DrawImage(sprite.Image, op)
	}
}

// DrawGridLines 绘制网格线覆盖层
func (s *GridRenderSystem) DrawGridLines(screen *ebiten.Image) {
	left := float32(s.originX)
	top := float32(s.originY)
	right := float32(s.originX + float64(s.gridWidth)*s.tileSize)
	bottom := float32(s.originY + float64(s.gridHeight)*s.tileSize)

	for col := 0; col <= s.gridWidth; col++ {
		x := float32(s.originX + float64(col)*s.tileSize)
		vector.StrokeLine(screen, x, top, x, bottom, 1, gridLineColor, false)
	}
	for row := 0; row <= s.gridHeight; row++ {
		y := float32(s.originY + float64(row)*s.tileSize)
		vector.StrokeLine(screen, left, y, right, y, 1, gridLineColor, false)
	}
}

// DrawHighlight 在指定格子上绘制悬停高亮框
func (s *GridRenderSystem) DrawHighlight(screen *ebiten.Image, c grid.Coordinate) {
	x, y := grid.TileToWorld(c, s.tileSize, s.originX, s.originY)
	vector.StrokeRect(screen,
		float32(x), float32(y),
		float32(s.tileSize), float32(s.tileSize),
		2, highlightColor, false)
}
