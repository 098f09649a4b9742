package config

import (
	"errors"
	"testing"
)

const validYAML = `
window:
  width: 1280
  height: 720
grid:
  width: 32
  height: 32
  tileSize: 32
  origin: auto
defaultZone: empty
zones:
  - id: empty
    name: "空地"
    color: "#1A661A"
  - id: road
    name: "道路"
    color: "#333333"
`

// TestParseCityConfigValid 测试合法配置的解析
func TestParseCityConfigValid(t *testing.T) {
	cfg, err := ParseCityConfig([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseCityConfig() error: %v", err)
	}

	if cfg.Grid.Width != 32 || cfg.Grid.Height != 32 {
		t.Errorf("网格尺寸 = %dx%d, want 32x32", cfg.Grid.Width, cfg.Grid.Height)
	}
	if len(cfg.Zones) != 2 {
		t.Fatalf("区划数量 = %d, want 2", len(cfg.Zones))
	}
	if cfg.DefaultZone != "empty" {
		t.Errorf("DefaultZone = %q, want empty", cfg.DefaultZone)
	}
}

// TestParseCityConfigDefaults 测试默认值的应用
func TestParseCityConfigDefaults(t *testing.T) {
	minimal := `
grid:
  width: 4
  height: 4
zones:
  - id: empty
    color: "#000000"
`
	cfg, err := ParseCityConfig([]byte(minimal))
	if err != nil {
		t.Fatalf("ParseCityConfig() error: %v", err)
	}

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("窗口默认值 = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Grid.TileSize != 32 {
		t.Errorf("TileSize 默认值 = %v, want 32", cfg.Grid.TileSize)
	}
	if cfg.Grid.Origin != OriginAuto {
		t.Errorf("Origin 默认值 = %q, want auto", cfg.Grid.Origin)
	}
	if cfg.DefaultZone != "empty" {
		t.Errorf("DefaultZone 应默认为第一项区划, got %q", cfg.DefaultZone)
	}
}

// TestParseCityConfigInvalid 测试非法配置被拒绝
func TestParseCityConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"零尺寸网格", `
grid: {width: 0, height: 4}
zones: [{id: empty, color: "#000000"}]
`},
		{"空区划列表", `
grid: {width: 4, height: 4}
zones: []
`},
		{"区划ID重复", `
grid: {width: 4, height: 4}
zones: [{id: empty, color: "#000000"}, {id: empty, color: "#111111"}]
`},
		{"默认区划不存在", `
grid: {width: 4, height: 4}
defaultZone: water
zones: [{id: empty, color: "#000000"}]
`},
		{"颜色格式错误", `
grid: {width: 4, height: 4}
zones: [{id: empty, color: "green"}]
`},
		{"原点格式错误", `
grid: {width: 4, height: 4, origin: "somewhere"}
zones: [{id: empty, color: "#000000"}]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCityConfig([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

// TestOriginAuto 测试自动原点在窗口中居中
func TestOriginAuto(t *testing.T) {
	cfg, err := ParseCityConfig([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseCityConfig() error: %v", err)
	}

	x, y := cfg.Origin()
	// 1280 - 32*32 = 256 → x=128; 720 - 1024 = -304 → y=-152
	if x != 128 {
		t.Errorf("居中原点 x = %v, want 128", x)
	}
	if y != -152 {
		t.Errorf("居中原点 y = %v, want -152", y)
	}
}

// TestOriginFixed 测试固定原点的解析
func TestOriginFixed(t *testing.T) {
	fixed := `
grid: {width: 4, height: 4, origin: "100, 50"}
zones: [{id: empty, color: "#000000"}]
`
	cfg, err := ParseCityConfig([]byte(fixed))
	if err != nil {
		t.Fatalf("ParseCityConfig() error: %v", err)
	}

	x, y := cfg.Origin()
	if x != 100 || y != 50 {
		t.Errorf("固定原点 = (%v,%v), want (100,50)", x, y)
	}
}

// TestParseHexColor 测试颜色解析
func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1A80E6")
	if err != nil {
		t.Fatalf("ParseHexColor() error: %v", err)
	}
	if c.R != 0x1A || c.G != 0x80 || c.B != 0xE6 || c.A != 255 {
		t.Errorf("ParseHexColor = %+v", c)
	}

	for _, bad := range []string{"", "#FFF", "123456", "#GGGGGG"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) 应返回错误", bad)
		}
	}
}
