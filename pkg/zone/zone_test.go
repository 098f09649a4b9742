package zone

import (
	"errors"
	"testing"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(
		[]string{"empty", "road", "residential"},
		[]string{"空地", "道路", "住宅区"},
		"empty",
	)
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}
	return s
}

// TestNewSetValidation 测试区划集合的构造校验
func TestNewSetValidation(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		defaultID string
		wantErr   error
	}{
		{"空集合", []string{}, "empty", ErrEmptySet},
		{"ID重复", []string{"empty", "empty"}, "empty", ErrDuplicateID},
		{"默认区划不存在", []string{"empty", "road"}, "water", ErrUnknownDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.ids, nil, tt.defaultID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSet() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSuccessorCycle 测试后继函数的循环闭合性
// 对任意起点应用 Count 次后继应回到起点
func TestSuccessorCycle(t *testing.T) {
	s := newTestSet(t)

	for start := Kind(0); int(start) < s.Count(); start++ {
		k := start
		for i := 0; i < s.Count(); i++ {
			k = s.Successor(k)
		}
		if k != start {
			t.Errorf("从 %v 出发应用 %d 次后继得到 %v，应回到起点", start, s.Count(), k)
		}
	}
}

// TestSuccessorWrapsAround 测试最后一个区划回绕到第一个
func TestSuccessorWrapsAround(t *testing.T) {
	s := newTestSet(t)

	last := Kind(s.Count() - 1)
	if got := s.Successor(last); got != Kind(0) {
		t.Errorf("Successor(last) = %v, want 0", got)
	}
}

// TestSuccessorIsTotal 测试后继函数对越界输入也是全函数
func TestSuccessorIsTotal(t *testing.T) {
	s := newTestSet(t)

	for _, k := range []Kind{KindInvalid, Kind(-7), Kind(100)} {
		got := s.Successor(k)
		if !s.Contains(got) {
			t.Errorf("Successor(%v) = %v 不在集合内", k, got)
		}
	}
}

// TestSingleMemberSet 测试单成员集合：后继指向自身
func TestSingleMemberSet(t *testing.T) {
	s, err := NewSet([]string{"empty"}, nil, "empty")
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	if got := s.Successor(0); got != Kind(0) {
		t.Errorf("单成员集合 Successor(0) = %v, want 0", got)
	}
}

// TestLookup 测试ID与区划的双向查找
func TestLookup(t *testing.T) {
	s := newTestSet(t)

	k, ok := s.KindOf("road")
	if !ok || k != Kind(1) {
		t.Errorf("KindOf(road) = (%v, %v), want (1, true)", k, ok)
	}

	if _, ok := s.KindOf("water"); ok {
		t.Error("KindOf(water) 不应成功")
	}

	if got := s.ID(Kind(2)); got != "residential" {
		t.Errorf("ID(2) = %q, want residential", got)
	}

	if got := s.Name(Kind(1)); got != "道路" {
		t.Errorf("Name(1) = %q, want 道路", got)
	}

	if got := s.ID(Kind(99)); got != "" {
		t.Errorf("越界 ID(99) = %q, want 空字符串", got)
	}
}

// TestNameFallsBackToID 测试名称缺失时退化为ID
func TestNameFallsBackToID(t *testing.T) {
	s, err := NewSet([]string{"empty", "road"}, []string{"空地"}, "empty")
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	if got := s.Name(Kind(1)); got != "road" {
		t.Errorf("Name(1) = %q, want road", got)
	}
}

// TestInitial 测试默认区划
func TestInitial(t *testing.T) {
	s, err := NewSet([]string{"empty", "road"}, nil, "road")
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	if got := s.Initial(); got != Kind(1) {
		t.Errorf("Initial() = %v, want 1", got)
	}
}
