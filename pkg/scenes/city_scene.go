// Package scenes 提供游戏场景的组装与帧循环编排
package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/citygrid/internal/snapshot"
	"github.com/decker502/citygrid/pkg/config"
	"github.com/decker502/citygrid/pkg/ecs"
	"github.com/decker502/citygrid/pkg/entities"
	"github.com/decker502/citygrid/pkg/game"
	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/systems"
	"github.com/decker502/citygrid/pkg/utils"
	"github.com/decker502/citygrid/pkg/zone"
)

// 快照导出的默认文件名
const snapshotPath = "city_snapshot.png"

// 状态提示的显示时长（秒）
const statusDuration = 2.0

// 清屏背景色（深蓝黑）
var backgroundColor = color.RGBA{R: 13, G: 13, B: 20, A: 255}

// CityScene 城市网格场景
//
// 负责组装网格存储、区划集合、资源图集和各个系统，并规定
// 每帧的固定执行顺序：
//
//	输入采集 → 交互路由 → （模拟步进，本作暂无） → 渲染同步 → 绘制
//
// 所有状态变更都发生在单一模拟线程的一帧之内，组件之间不存在
// 并发访问，因此不需要任何锁。
type CityScene struct {
	cfg       *config.CityConfig
	zones     *zone.Set
	store     *grid.TileStore
	gameState *game.GameState

	entityManager     *ecs.EntityManager
	interactionSystem *systems.InteractionSystem
	renderSyncSystem  *systems.RenderSyncSystem
	gridRenderSystem  *systems.GridRenderSystem

	originX float64
	originY float64

	// 指针当前悬停的格子（每帧更新，用于高亮和 HUD）
	hovered   grid.Coordinate
	hoveredOK bool

	// 短暂的状态提示（存档/读档/截图的结果反馈）
	statusText  string
	statusTimer float64
}

// NewCityScene 创建城市场景
//
// 依次完成：区划集合构建、网格存储创建、资源图集预渲染、
// 格子实体创建、系统装配，以及存在存档时的自动读档。
// 任何一步的配置完整性问题都会使创建失败（启动时致命）。
func NewCityScene(cfg *config.CityConfig) (*CityScene, error) {
	zones, err := zone.NewSet(cfg.ZoneIDs(), cfg.ZoneNames(), cfg.DefaultZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
	}

	store, err := grid.NewTileStore(cfg.Grid.Width, cfg.Grid.Height, zones.Initial())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
	}

	// 启动时为全部区划预渲染图像，缺失映射在这里就暴露
	atlas, err := game.NewTileAtlas(cfg, zones)
	if err != nil {
		return nil, err
	}

	gs := game.GetGameState()
	originX, originY := cfg.Origin()

	em := ecs.NewEntityManager()
	renderSync := systems.NewRenderSyncSystem(em, store, atlas)

	// 每个格子一个可视实体，网格存续期间不增不减
	initialImg, err := atlas.Resolve(zones.Initial())
	if err != nil {
		return nil, err
	}
	for row := 0; row < cfg.Grid.Height; row++ {
		for col := 0; col < cfg.Grid.Width; col++ {
			c := grid.Coordinate{Row: row, Col: col}
			x, y := grid.TileToWorld(c, cfg.Grid.TileSize, originX, originY)
			id := entities.CreateTileEntity(em, c, x, y, initialImg)
			renderSync.Register(c, id)
		}
	}

	scene := &CityScene{
		cfg:               cfg,
		zones:             zones,
		store:             store,
		gameState:         gs,
		entityManager:     em,
		interactionSystem: systems.NewInteractionSystem(store, zones, gs, cfg.Grid.TileSize, originX, originY),
		renderSyncSystem:  renderSync,
		gridRenderSystem:  systems.NewGridRenderSystem(em, cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.TileSize, originX, originY),
		originX:           originX,
		originY:           originY,
	}

	// 有存档则自动恢复；失败不致命，从空白城市开始
	saveManager := gs.GetSaveManager()
	if saveManager.HasSave() {
		if err := saveManager.Load(store, zones); err != nil {
			log.Printf("[CityScene] failed to load save: %v (starting fresh)", err)
		} else {
			log.Printf("[CityScene] save loaded")
		}
	}

	log.Printf("[CityScene] city %dx%d ready, %d zones, origin (%.0f, %.0f)",
		cfg.Grid.Width, cfg.Grid.Height, zones.Count(), originX, originY)
	return scene, nil
}

// Update 更新场景逻辑
// 固定顺序：按键 → 悬停更新 → 交互路由 → 渲染同步
func (s *CityScene) Update(deltaTime float64) {
	s.handleKeys()

	// 悬停格子每帧更新（暂停时不高亮）
	px, py := utils.GetPointerPosition()
	s.hovered, s.hoveredOK = s.interactionSystem.HoveredTile(float64(px), float64(py))

	// 本帧所有输入路由完毕后再同步渲染，
	// 保证 T 帧的变更在 T 帧的绘制中可见
	s.interactionSystem.Update()

	if err := s.renderSyncSystem.Sync(); err != nil {
		// 区划缺失资源映射属于配置完整性问题：大声报告，不静默留下陈旧视觉
		log.Printf("[CityScene] ERROR: render sync failed: %v", err)
		s.setStatus(fmt.Sprintf("渲染同步失败: %v", err))
	}

	if s.statusTimer > 0 {
		s.statusTimer -= deltaTime
	}
}

// handleKeys 处理快捷键
func (s *CityScene) handleKeys() {
	// ESC 切换暂停
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.gameState.TogglePause()
		if s.gameState.IsPaused {
			log.Printf("[CityScene] paused")
		} else {
			log.Printf("[CityScene] resumed")
		}
	}

	// G 切换网格线并持久化设置
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		settings := s.gameState.GetSettingsManager()
		show := !settings.GetSettings().ShowGridLines
		settings.SetShowGridLines(show)
		if err := settings.Save(); err != nil {
			log.Printf("[CityScene] failed to save settings: %v", err)
		}
	}

	// F5 存档
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := s.gameState.GetSaveManager().Save(s.store, s.zones); err != nil {
			log.Printf("[CityScene] save failed: %v", err)
			s.setStatus("存档失败")
		} else {
			s.setStatus("已存档")
		}
	}

	// F9 读档
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := s.gameState.GetSaveManager().Load(s.store, s.zones); err != nil {
			log.Printf("[CityScene] load failed: %v", err)
			s.setStatus("读档失败")
		} else {
			s.setStatus("已读档")
		}
	}

	// F12 导出城市平面图
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		colors := s.zoneColors()
		if err := snapshot.SavePNG(snapshotPath, s.store, colors, s.cfg.Grid.TileSize); err != nil {
			log.Printf("[CityScene] snapshot failed: %v", err)
			s.setStatus("截图失败")
		} else {
			log.Printf("[CityScene] snapshot written to %s", snapshotPath)
			s.setStatus("已导出 " + snapshotPath)
		}
	}
}

// Draw 渲染场景
func (s *CityScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.gridRenderSystem.Draw(screen)

	if s.gameState.GetSettingsManager().GetSettings().ShowGridLines {
		s.gridRenderSystem.DrawGridLines(screen)
	}

	if s.hoveredOK && !s.gameState.IsPaused {
		s.gridRenderSystem.DrawHighlight(screen, s.hovered)
	}

	s.drawHUD(screen)
}

// drawHUD 绘制调试信息层
func (s *CityScene) drawHUD(screen *ebiten.Image) {
	if s.hoveredOK {
		k, err := s.store.Get(s.hovered)
		if err == nil {
			info := fmt.Sprintf("(%d,%d) %s", s.hovered.Row, s.hovered.Col, s.zones.Name(k))
			ebitenutil.DebugPrintAt(screen, info, 10, 10)
		}
	}

	if s.gameState.IsPaused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (ESC)", 10, 30)
	}

	if s.statusTimer > 0 {
		ebitenutil.DebugPrintAt(screen, s.statusText, 10, s.cfg.Window.Height-30)
	}

	fpsText := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, fpsText, s.cfg.Window.Width-100, 10)
}

// SaveOnExit 在窗口关闭时保存城市和设置
func (s *CityScene) SaveOnExit() bool {
	ok := true
	if err := s.gameState.GetSaveManager().Save(s.store, s.zones); err != nil {
		log.Printf("[CityScene] save on exit failed: %v", err)
		ok = false
	}
	if err := s.gameState.GetSettingsManager().Save(); err != nil {
		log.Printf("[CityScene] settings save on exit failed: %v", err)
		ok = false
	}
	return ok
}

func (s *CityScene) setStatus(text string) {
	s.statusText = text
	s.statusTimer = statusDuration
}

// zoneColors 返回按区划序号索引的颜色表
func (s *CityScene) zoneColors() []color.RGBA {
	colors := make([]color.RGBA, len(s.cfg.Zones))
	for i := range s.cfg.Zones {
		colors[i] = s.cfg.ZoneColor(i)
	}
	return colors
}
