package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/citygrid/pkg/app"
	"github.com/decker502/citygrid/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "输出详细日志")
	configPath := flag.String("config", "data/city.yaml", "城市配置文件路径（嵌入资源）")
	flag.Parse()

	// 初始化嵌入资源，必须在任何配置加载之前
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(a.WindowWidth(), a.WindowHeight())
	ebiten.SetWindowTitle(a.Title())
	// 窗口关闭由 App 处理（退出前自动存档）
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
