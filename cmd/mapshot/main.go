// mapshot 把存档中的城市渲染为PNG平面图
//
// 用法：
//
//	mapshot [-config data/city.yaml] [-out city.png]
//
// 存在存档时渲染存档状态，否则渲染空白城市。
package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/citygrid/internal/snapshot"
	"github.com/decker502/citygrid/pkg/config"
	"github.com/decker502/citygrid/pkg/game"
	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/zone"
)

func main() {
	configPath := flag.String("config", "data/city.yaml", "城市配置文件路径（磁盘路径）")
	outPath := flag.String("out", "city.png", "输出PNG文件路径")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	cfg, err := config.ParseCityConfig(data)
	if err != nil {
		log.Fatalf("解析配置失败: %v", err)
	}

	zones, err := zone.NewSet(cfg.ZoneIDs(), cfg.ZoneNames(), cfg.DefaultZone)
	if err != nil {
		log.Fatalf("区划集合创建失败: %v", err)
	}

	store, err := grid.NewTileStore(cfg.Grid.Width, cfg.Grid.Height, zones.Initial())
	if err != nil {
		log.Fatalf("网格创建失败: %v", err)
	}

	// 有存档则渲染存档状态
	if m, err := gdata.Open(gdata.Config{AppName: "citygrid"}); err == nil {
		saveManager := game.NewSaveManager(m)
		if saveManager.HasSave() {
			if err := saveManager.Load(store, zones); err != nil {
				log.Printf("存档加载失败: %v（渲染空白城市）", err)
			}
		}
	} else {
		log.Printf("存储打开失败: %v（渲染空白城市）", err)
	}

	colors := make([]color.RGBA, len(cfg.Zones))
	for i := range cfg.Zones {
		colors[i] = cfg.ZoneColor(i)
	}

	if err := snapshot.SavePNG(*outPath, store, colors, cfg.Grid.TileSize); err != nil {
		log.Fatalf("导出失败: %v", err)
	}
	log.Printf("已导出 %s (%dx%d)", *outPath, cfg.Grid.Width, cfg.Grid.Height)
}
