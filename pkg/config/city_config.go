// Package config 提供城市网格的配置数据结构与加载逻辑
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/citygrid/pkg/embedded"
)

// ErrInvalidConfiguration 配置完整性错误
// 启动时致命：配置非法时模拟不得继续
var ErrInvalidConfiguration = errors.New("invalid configuration")

// OriginAuto 表示网格原点自动计算（在窗口中居中）
const OriginAuto = "auto"

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 窗口宽度（像素）
	Height int    `yaml:"height"` // 窗口高度（像素）
	Title  string `yaml:"title"`  // 窗口标题
}

// GridConfig 网格配置
type GridConfig struct {
	Width    int     `yaml:"width"`    // 网格列数
	Height   int     `yaml:"height"`   // 网格行数
	TileSize float64 `yaml:"tileSize"` // 格子边长（像素）
	Origin   string  `yaml:"origin"`   // 网格原点："auto" 表示居中，或 "x,y" 固定坐标
}

// ZoneConfig 单个区划的配置
type ZoneConfig struct {
	ID    string `yaml:"id"`    // 区划ID，如 "residential"
	Name  string `yaml:"name"`  // 显示名称，如 "住宅区"
	Color string `yaml:"color"` // 显示颜色，"#RRGGBB" 格式
}

// CityConfig 城市配置根结构
//
// 核心把配置视为启动时提供的不可变快照：
// 加载、应用默认值、校验一次完成，之后只读。
type CityConfig struct {
	Window      WindowConfig `yaml:"window"`
	Grid        GridConfig   `yaml:"grid"`
	DefaultZone string       `yaml:"defaultZone"` // 初始区划ID，默认为区划列表的第一项
	Zones       []ZoneConfig `yaml:"zones"`       // 有序区划列表，顺序即循环切换顺序
}

// LoadCityConfig 从嵌入的 data FS 加载城市配置
//
// 参数：
//   - path: 配置文件路径，如 "data/city.yaml"
//
// 返回：
//   - *CityConfig: 解析并校验后的配置
//   - error: 读取/解析失败或校验不通过时返回错误（包装 ErrInvalidConfiguration）
func LoadCityConfig(path string) (*CityConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read city config %s: %w", path, err)
	}
	cfg, err := ParseCityConfig(data)
	if err != nil {
		return nil, fmt.Errorf("city config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCityConfig 解析YAML数据为城市配置
// 解析后应用默认值并校验必填字段
func ParseCityConfig(data []byte) (*CityConfig, error) {
	var cfg CityConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse city config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults 应用默认值（向后兼容性）
func applyDefaults(cfg *CityConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "City Grid"
	}
	if cfg.Grid.TileSize == 0 {
		cfg.Grid.TileSize = 32
	}
	if cfg.Grid.Origin == "" {
		cfg.Grid.Origin = OriginAuto
	}
	if cfg.DefaultZone == "" && len(cfg.Zones) > 0 {
		cfg.DefaultZone = cfg.Zones[0].ID
	}
}

// validate 校验配置完整性
// 任何一条不满足都包装 ErrInvalidConfiguration 返回
func validate(cfg *CityConfig) error {
	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		return fmt.Errorf("%w: grid size %dx%d must be positive",
			ErrInvalidConfiguration, cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Grid.TileSize <= 0 {
		return fmt.Errorf("%w: tileSize %v must be positive", ErrInvalidConfiguration, cfg.Grid.TileSize)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive",
			ErrInvalidConfiguration, cfg.Window.Width, cfg.Window.Height)
	}
	if len(cfg.Zones) == 0 {
		return fmt.Errorf("%w: zone list is empty", ErrInvalidConfiguration)
	}

	seen := make(map[string]bool, len(cfg.Zones))
	defaultFound := false
	for i, z := range cfg.Zones {
		if z.ID == "" {
			return fmt.Errorf("%w: zone #%d has empty id", ErrInvalidConfiguration, i)
		}
		if seen[z.ID] {
			return fmt.Errorf("%w: duplicate zone id %q", ErrInvalidConfiguration, z.ID)
		}
		seen[z.ID] = true
		if z.ID == cfg.DefaultZone {
			defaultFound = true
		}
		if _, err := ParseHexColor(z.Color); err != nil {
			return fmt.Errorf("%w: zone %q color: %v", ErrInvalidConfiguration, z.ID, err)
		}
	}
	if !defaultFound {
		return fmt.Errorf("%w: defaultZone %q not in zone list", ErrInvalidConfiguration, cfg.DefaultZone)
	}

	if cfg.Grid.Origin != OriginAuto {
		if _, _, err := parseOrigin(cfg.Grid.Origin); err != nil {
			return fmt.Errorf("%w: grid origin %q: %v", ErrInvalidConfiguration, cfg.Grid.Origin, err)
		}
	}
	return nil
}

// Origin 返回网格左上角的世界坐标
// origin 为 "auto" 时按窗口尺寸居中计算
func (cfg *CityConfig) Origin() (x, y float64) {
	if cfg.Grid.Origin == OriginAuto {
		gridW := float64(cfg.Grid.Width) * cfg.Grid.TileSize
		gridH := float64(cfg.Grid.Height) * cfg.Grid.TileSize
		return (float64(cfg.Window.Width) - gridW) / 2, (float64(cfg.Window.Height) - gridH) / 2
	}
	// validate 已保证可解析
	x, y, _ = parseOrigin(cfg.Grid.Origin)
	return x, y
}

// ZoneIDs 返回有序的区划ID列表
func (cfg *CityConfig) ZoneIDs() []string {
	ids := make([]string, len(cfg.Zones))
	for i, z := range cfg.Zones {
		ids[i] = z.ID
	}
	return ids
}

// ZoneNames 返回与 ZoneIDs 对应的显示名称列表
func (cfg *CityConfig) ZoneNames() []string {
	names := make([]string, len(cfg.Zones))
	for i, z := range cfg.Zones {
		names[i] = z.Name
	}
	return names
}

// ZoneColor 返回第 i 个区划的颜色
// validate 已保证颜色可解析，索引越界时返回不透明黑色
func (cfg *CityConfig) ZoneColor(i int) color.RGBA {
	if i < 0 || i >= len(cfg.Zones) {
		return color.RGBA{A: 255}
	}
	c, _ := ParseHexColor(cfg.Zones[i].Color)
	return c
}

// parseOrigin 解析 "x,y" 格式的固定原点
func parseOrigin(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"x,y\" or %q", OriginAuto)
	}
	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x: %v", err)
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y: %v", err)
	}
	return x, y, nil
}

// ParseHexColor 解析 "#RRGGBB" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q must be in #RRGGBB format", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %v", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
