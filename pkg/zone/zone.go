// Package zone 定义区划类型及其状态机
//
// 区划是每个格子携带的分类状态（空地、道路、住宅区等）。
// 具体有哪些区划由配置决定，不在核心逻辑中硬编码。
// 本包只负责一件事：在一个封闭的有序集合上提供确定性的循环后继函数。
// 它不依赖坐标、输入或渲染，可以完全独立测试。
package zone

import (
	"errors"
	"fmt"
)

// Kind 区划类型，值为区划在配置列表中的序号
// 序号顺序即点击循环的切换顺序
type Kind int

// KindInvalid 表示无效区划（查询失败时返回）
const KindInvalid Kind = -1

// 区划集合的构造错误
var (
	// ErrEmptySet 区划列表为空
	ErrEmptySet = errors.New("zone set is empty")
	// ErrDuplicateID 区划ID重复
	ErrDuplicateID = errors.New("duplicate zone id")
	// ErrUnknownDefault 默认区划不在集合中
	ErrUnknownDefault = errors.New("default zone not in set")
)

// Set 有序区划集合
//
// 集合一经创建不可变，是区划切换策略的唯一载体：
//   - Successor 定义点击格子时的状态转移
//   - Initial 定义网格创建时所有格子的初始区划
//
// 状态机视角：状态 = 集合成员；每个状态恰有一条 Successor 边指向
// 下一个成员，最后一个成员回绕到第一个；没有终止状态。
type Set struct {
	ids     []string
	names   []string
	byID    map[string]Kind
	initial Kind
}

// NewSet 根据有序的区划ID和显示名称创建区划集合
//
// 参数：
//   - ids: 区划ID列表（顺序即循环顺序），不能为空，不能重复
//   - names: 与 ids 一一对应的显示名称（长度不足时以ID代替）
//   - defaultID: 初始区划ID，必须存在于 ids 中
//
// 返回：
//   - *Set: 创建的区划集合
//   - error: 校验失败时返回 ErrEmptySet / ErrDuplicateID / ErrUnknownDefault
func NewSet(ids, names []string, defaultID string) (*Set, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySet
	}

	s := &Set{
		ids:   make([]string, len(ids)),
		names: make([]string, len(ids)),
		byID:  make(map[string]Kind, len(ids)),
	}
	copy(s.ids, ids)

	for i, id := range ids {
		if _, exists := s.byID[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		s.byID[id] = Kind(i)

		// 名称缺失时退化为ID，保证显示层总有可用文本
		if i < len(names) && names[i] != "" {
			s.names[i] = names[i]
		} else {
			s.names[i] = id
		}
	}

	initial, ok := s.byID[defaultID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultID)
	}
	s.initial = initial

	return s, nil
}

// Count 返回区划数量
func (s *Set) Count() int {
	return len(s.ids)
}

// Initial 返回网格创建时所有格子的默认区划
func (s *Set) Initial() Kind {
	return s.initial
}

// Successor 返回区划的循环后继
//
// 这是一个全函数：任意输入先对集合大小取模归一化，
// 因此即使传入越界的 Kind 也不会越界访问。
// 最后一个区划的后继回绕到第一个。
func (s *Set) Successor(k Kind) Kind {
	n := len(s.ids)
	i := int(k) % n
	if i < 0 {
		i += n
	}
	return Kind((i + 1) % n)
}

// Contains 检查区划是否属于本集合
func (s *Set) Contains(k Kind) bool {
	return k >= 0 && int(k) < len(s.ids)
}

// ID 返回区划的配置ID，越界时返回空字符串
func (s *Set) ID(k Kind) string {
	if !s.Contains(k) {
		return ""
	}
	return s.ids[k]
}

// Name 返回区划的显示名称，越界时返回空字符串
func (s *Set) Name(k Kind) string {
	if !s.Contains(k) {
		return ""
	}
	return s.names[k]
}

// KindOf 根据配置ID查找区划
// 找不到时返回 (KindInvalid, false)
func (s *Set) KindOf(id string) (Kind, bool) {
	k, ok := s.byID[id]
	if !ok {
		return KindInvalid, false
	}
	return k, true
}

// IDs 返回区划ID列表的副本（顺序即循环顺序）
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
