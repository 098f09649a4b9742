package grid

import (
	"errors"
	"testing"

	"github.com/decker502/citygrid/pkg/zone"
)

func newTestStore(t *testing.T) *TileStore {
	t.Helper()
	ts, err := NewTileStore(3, 3, zone.Kind(0))
	if err != nil {
		t.Fatalf("NewTileStore() error: %v", err)
	}
	return ts
}

// TestNewTileStoreValidation 测试非法尺寸被拒绝
func TestNewTileStoreValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"零宽", 0, 3},
		{"零高", 3, 0},
		{"负宽", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTileStore(tt.width, tt.height, 0); err == nil {
				t.Errorf("NewTileStore(%d,%d) 应返回错误", tt.width, tt.height)
			}
		})
	}
}

// TestSetThenGet 测试写后读的一致性
func TestSetThenGet(t *testing.T) {
	ts := newTestStore(t)

	c := Coordinate{Row: 1, Col: 2}
	if err := ts.Set(c, zone.Kind(2)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := ts.Get(c)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != zone.Kind(2) {
		t.Errorf("Get() = %v, want 2", got)
	}

	// 其他格子保持初始区划
	other, _ := ts.Get(Coordinate{Row: 0, Col: 0})
	if other != zone.Kind(0) {
		t.Errorf("未写入的格子 = %v, want 0", other)
	}
}

// TestOutOfBounds 测试越界坐标的 Get/Set 均返回 ErrOutOfBounds
func TestOutOfBounds(t *testing.T) {
	ts := newTestStore(t)

	coords := []Coordinate{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 3, Col: 0},
		{Row: 0, Col: 3},
		{Row: 100, Col: 100},
	}

	for _, c := range coords {
		if _, err := ts.Get(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%v) error = %v, want ErrOutOfBounds", c, err)
		}
		if err := ts.Set(c, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%v) error = %v, want ErrOutOfBounds", c, err)
		}
	}

	// 越界写入不应产生脏格子
	if n := ts.DirtyCount(); n != 0 {
		t.Errorf("越界 Set 后 DirtyCount = %d, want 0", n)
	}
}

// TestForEachDirtyDeliversOnce 测试脏集合的一次性消费语义
// 排空前变更两次的格子只被访问一次，且读到最新区划
func TestForEachDirtyDeliversOnce(t *testing.T) {
	ts := newTestStore(t)

	c := Coordinate{Row: 1, Col: 1}
	ts.Set(c, 1)
	ts.Set(c, 2)
	ts.Set(Coordinate{Row: 0, Col: 2}, 1)

	visits := make(map[Coordinate]zone.Kind)
	count := 0
	ts.ForEachDirty(func(coord Coordinate, k zone.Kind) {
		visits[coord] = k
		count++
	})

	if count != 2 {
		t.Fatalf("访问次数 = %d, want 2", count)
	}
	if visits[c] != zone.Kind(2) {
		t.Errorf("两次变更的格子读到 %v, want 最新区划 2", visits[c])
	}

	// 排空后脏集合为空
	ts.ForEachDirty(func(Coordinate, zone.Kind) {
		t.Error("第二次排空不应有任何访问")
	})

	// 再次变更后重新入队
	ts.Set(c, 0)
	if n := ts.DirtyCount(); n != 1 {
		t.Errorf("再次 Set 后 DirtyCount = %d, want 1", n)
	}
}

// TestRestore 测试整体恢复：状态替换且所有格子标脏
func TestRestore(t *testing.T) {
	ts := newTestStore(t)

	zones := make([]zone.Kind, 9)
	zones[4] = 3
	if err := ts.Restore(zones); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	got, _ := ts.Get(Coordinate{Row: 1, Col: 1})
	if got != zone.Kind(3) {
		t.Errorf("恢复后中心格子 = %v, want 3", got)
	}

	if n := ts.DirtyCount(); n != 9 {
		t.Errorf("恢复后 DirtyCount = %d, want 9", n)
	}

	// 长度不匹配被拒绝
	if err := ts.Restore(make([]zone.Kind, 4)); err == nil {
		t.Error("长度不匹配的 Restore 应返回错误")
	}
}

// TestZonesCopy 测试 Zones 返回副本而非内部切片
func TestZonesCopy(t *testing.T) {
	ts := newTestStore(t)

	snapshot := ts.Zones()
	snapshot[0] = 4

	got, _ := ts.Get(Coordinate{Row: 0, Col: 0})
	if got != zone.Kind(0) {
		t.Error("修改 Zones() 返回值不应影响存储内部状态")
	}
}
