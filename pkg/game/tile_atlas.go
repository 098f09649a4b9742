package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/citygrid/pkg/config"
	"github.com/decker502/citygrid/pkg/zone"
)

// ErrUnmappedZone 区划没有对应的可渲染资源
// 这是启动/配置完整性问题，不是运行时可恢复错误
var ErrUnmappedZone = errors.New("no renderable asset mapped for zone")

// TileAtlas 区划资源解析器
//
// 职责：把区划类型解析为可绘制的图像句柄，只被渲染同步器调用。
//
// 当前实现按配置颜色为每个区划预渲染一张纯色格子图。渲染层只
// 依赖 Resolve 这一个查询，将来替换为精灵贴图或 3D 渲染资源时，
// 网格存储、区划状态机和交互路由都无需改动。
type TileAtlas struct {
	images map[zone.Kind]*ebiten.Image
}

// NewTileAtlas 为区划集合中的每个成员预渲染格子图像
//
// 格子图像比 tileSize 小一个像素，格子之间留出缝隙，
// 肉眼可以分辨网格（与是否绘制网格线无关）。
//
// 在这里就为全部区划生成图像，保证"每个区划都有资源"这条
// 完整性约束在启动时验证，而不是等到第一次点击才发现。
func NewTileAtlas(cfg *config.CityConfig, zones *zone.Set) (*TileAtlas, error) {
	if zones.Count() != len(cfg.Zones) {
		return nil, fmt.Errorf("%w: zone set has %d members, config has %d",
			ErrUnmappedZone, zones.Count(), len(cfg.Zones))
	}

	side := int(cfg.Grid.TileSize) - 1
	if side < 1 {
		side = 1
	}

	atlas := &TileAtlas{
		images: make(map[zone.Kind]*ebiten.Image, zones.Count()),
	}
	for i := 0; i < zones.Count(); i++ {
		img := ebiten.NewImage(side, side)
		img.Fill(cfg.ZoneColor(i))
		atlas.images[zone.Kind(i)] = img
	}
	return atlas, nil
}

// Resolve 返回区划对应的图像句柄
// 区划未映射时返回 ErrUnmappedZone
func (ta *TileAtlas) Resolve(k zone.Kind) (*ebiten.Image, error) {
	img, ok := ta.images[k]
	if !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrUnmappedZone, k)
	}
	return img, nil
}
