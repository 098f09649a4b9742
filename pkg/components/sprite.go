package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
// 渲染同步器在格子区划变更时替换 Image，绘制系统每帧按原样绘制
type SpriteComponent struct {
	Image *ebiten.Image
}
