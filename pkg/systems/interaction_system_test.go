package systems

import (
	"testing"

	"github.com/decker502/citygrid/pkg/game"
	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/zone"
)

func newTestRouter(t *testing.T) (*InteractionSystem, *grid.TileStore, *zone.Set) {
	t.Helper()

	zones, err := zone.NewSet(
		[]string{"empty", "residential", "commercial"},
		[]string{"空地", "住宅区", "商业区"},
		"empty",
	)
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	store, err := grid.NewTileStore(3, 3, zones.Initial())
	if err != nil {
		t.Fatalf("NewTileStore() error: %v", err)
	}

	// 3x3 网格，原点 (0,0)，格子边长 32
	sys := NewInteractionSystem(store, zones, nil, 32, 0, 0)
	return sys, store, zones
}

// TestClickCyclesZone 测试点击格子推进区划
// 场景：3x3 网格全部为空地，点击 (1,1) 两次后该格子应为商业区，
// 其他格子保持空地
func TestClickCyclesZone(t *testing.T) {
	sys, store, _ := newTestRouter(t)

	// (1,1) 格子的中心世界坐标是 (48, 48)
	if !sys.HandleClick(48, 48) {
		t.Fatal("第一次点击应改变格子")
	}
	if !sys.HandleClick(48, 48) {
		t.Fatal("第二次点击应改变格子")
	}

	got, err := store.Get(grid.Coordinate{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != zone.Kind(2) {
		t.Errorf("点击两次后 (1,1) = %v, want 2 (商业区)", got)
	}

	// 其他格子保持空地
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			k, _ := store.Get(grid.Coordinate{Row: row, Col: col})
			if k != zone.Kind(0) {
				t.Errorf("(%d,%d) = %v, want 0 (空地)", row, col, k)
			}
		}
	}
}

// TestNClicksEqualsNSuccessors 测试点击 N 次等价于应用 N 次后继
func TestNClicksEqualsNSuccessors(t *testing.T) {
	sys, store, zones := newTestRouter(t)

	const n = 7
	for i := 0; i < n; i++ {
		sys.HandleClick(10, 10)
	}

	want := zones.Initial()
	for i := 0; i < n; i++ {
		want = zones.Successor(want)
	}

	got, _ := store.Get(grid.Coordinate{Row: 0, Col: 0})
	if got != want {
		t.Errorf("点击 %d 次后 = %v, want %v", n, got, want)
	}

	// 7 mod 3 = 1 → 应为住宅区
	if got != zone.Kind(1) {
		t.Errorf("7 次点击对 3 个区划取模应得 1, got %v", got)
	}
}

// TestClickOutsideGridIsNoOp 测试网格外的点击不产生任何变更
// 场景：3x3 网格、原点 (0,0)、格子边长 32，点击 (500,500)
func TestClickOutsideGridIsNoOp(t *testing.T) {
	sys, store, _ := newTestRouter(t)

	outside := [][2]float64{
		{500, 500},
		{-1, 10},
		{10, -1},
		{96, 50}, // 恰好在右边界外
	}

	for _, p := range outside {
		if sys.HandleClick(p[0], p[1]) {
			t.Errorf("网格外的点击 (%v,%v) 不应改变任何格子", p[0], p[1])
		}
	}

	// 无变更、无脏格子
	if n := store.DirtyCount(); n != 0 {
		t.Errorf("网格外点击后 DirtyCount = %d, want 0", n)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			k, _ := store.Get(grid.Coordinate{Row: row, Col: col})
			if k != zone.Kind(0) {
				t.Errorf("(%d,%d) 被意外修改为 %v", row, col, k)
			}
		}
	}
}

// TestClickMarksTileDirty 测试有效点击把格子标脏（渲染层的唯一变更通道）
func TestClickMarksTileDirty(t *testing.T) {
	sys, store, _ := newTestRouter(t)

	sys.HandleClick(48, 48)

	if n := store.DirtyCount(); n != 1 {
		t.Fatalf("有效点击后 DirtyCount = %d, want 1", n)
	}

	var dirtied []grid.Coordinate
	store.ForEachDirty(func(c grid.Coordinate, _ zone.Kind) {
		dirtied = append(dirtied, c)
	})
	if len(dirtied) != 1 || dirtied[0] != (grid.Coordinate{Row: 1, Col: 1}) {
		t.Errorf("脏格子 = %v, want [(1,1)]", dirtied)
	}
}

// TestPausedBlocksInteraction 测试暂停时屏蔽网格交互
func TestPausedBlocksInteraction(t *testing.T) {
	zones, _ := zone.NewSet([]string{"empty", "road"}, nil, "empty")
	store, _ := grid.NewTileStore(2, 2, zones.Initial())
	gs := game.GetGameState()
	gs.IsPaused = true
	defer func() { gs.IsPaused = false }()

	sys := NewInteractionSystem(store, zones, gs, 32, 0, 0)
	sys.Update()

	if n := store.DirtyCount(); n != 0 {
		t.Errorf("暂停时 Update 不应产生变更, DirtyCount = %d", n)
	}
}

// TestHoveredTile 测试悬停格子解析
func TestHoveredTile(t *testing.T) {
	sys, _, _ := newTestRouter(t)

	c, ok := sys.HoveredTile(70, 10)
	if !ok || c != (grid.Coordinate{Row: 0, Col: 2}) {
		t.Errorf("HoveredTile(70,10) = (%v,%v), want ((0,2),true)", c, ok)
	}

	if _, ok := sys.HoveredTile(200, 200); ok {
		t.Error("网格外的悬停不应命中")
	}
}
