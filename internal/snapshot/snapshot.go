// Package snapshot 把网格状态离线渲染为位图
//
// 与实时渲染管线完全独立：只读取 TileStore 的区划快照和配置
// 颜色，用于导出城市平面图（F12 截图和 mapshot 命令行工具）。
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/decker502/citygrid/pkg/grid"
)

// 背景色与游戏内清屏色一致
var backgroundColor = color.RGBA{R: 13, G: 13, B: 20, A: 255}

// Render 把网格状态绘制为图像
//
// 参数：
//   - store: 网格存储（只读取，不修改）
//   - colors: 按区划序号索引的颜色表
//   - tileSize: 每个格子的边长（像素）
//
// 超出颜色表范围的区划画成黑色，保证渲染总能完成。
func Render(store *grid.TileStore, colors []color.RGBA, tileSize float64) image.Image {
	w := int(float64(store.Width()) * tileSize)
	h := int(float64(store.Height()) * tileSize)

	dc := gg.NewContext(w, h)
	dc.SetColor(backgroundColor)
	dc.Clear()

	zones := store.Zones()
	for i, k := range zones {
		c := grid.FromLinearIndex(i, store.Width())
		x, y := grid.TileToWorld(c, tileSize, 0, 0)

		if int(k) >= 0 && int(k) < len(colors) {
			dc.SetColor(colors[k])
		} else {
			dc.SetColor(color.RGBA{A: 255})
		}
		// 与实时渲染一致：格子之间留一个像素的缝隙
		dc.DrawRectangle(x, y, tileSize-1, tileSize-1)
		dc.Fill()
	}

	return dc.Image()
}

// SavePNG 渲染网格状态并写入PNG文件
func SavePNG(path string, store *grid.TileStore, colors []color.RGBA, tileSize float64) error {
	img := Render(store, colors, tileSize)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
