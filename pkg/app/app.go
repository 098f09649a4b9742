// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，main 只负责解析
// 命令行参数、初始化嵌入资源并启动 ebiten 主循环。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/citygrid/pkg/config"
	"github.com/decker502/citygrid/pkg/game"
	"github.com/decker502/citygrid/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 城市配置文件路径（嵌入资源），为空则使用默认路径
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	cityConfig   *config.CityConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "data/city.yaml"
	}

	// 加载城市配置（不可变快照，之后只读）
	cityConfig, err := config.LoadCityConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("城市配置加载失败: %w", err)
	}
	log.Printf("[App] config loaded: grid %dx%d, %d zones",
		cityConfig.Grid.Width, cityConfig.Grid.Height, len(cityConfig.Zones))

	// 创建城市场景
	cityScene, err := scenes.NewCityScene(cityConfig)
	if err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	// 创建场景管理器并激活城市场景
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(cityScene)

	// 应用启动设置
	settings := game.GetGameState().GetSettingsManager().GetSettings()
	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		cityConfig:   cityConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cityConfig.Window.Width, a.cityConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏并持久化设置
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		ebiten.SetFullscreen(!isFullscreen)
		if isFullscreen {
			// 退出全屏：延迟几帧后恢复窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}

		settingsManager := game.GetGameState().GetSettingsManager()
		settingsManager.SetFullscreen(!isFullscreen)
		if err := settingsManager.Save(); err != nil {
			log.Printf("[App] failed to save settings: %v", err)
		}
	}

	// 窗口关闭：给场景一次保存状态的机会，然后正常退出
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[App] save on exit reported failure")
			}
		}
		return ebiten.Termination
	}

	// ebiten 固定 60 TPS，deltaTime 恒为一帧
	a.sceneManager.Update(1.0 / 60.0)
	return nil
}

// Draw 渲染游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cityConfig.Window.Width, a.cityConfig.Window.Height
}

// WindowWidth 返回配置的窗口宽度
func (a *App) WindowWidth() int {
	return a.cityConfig.Window.Width
}

// WindowHeight 返回配置的窗口高度
func (a *App) WindowHeight() int {
	return a.cityConfig.Window.Height
}

// Title 返回配置的窗口标题
func (a *App) Title() string {
	return a.cityConfig.Window.Title
}
