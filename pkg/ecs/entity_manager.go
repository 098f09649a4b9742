// Package ecs 提供轻量的实体-组件管理器
//
// 本作的模拟状态由 TileStore 独占持有，ECS 只承载渲染侧的
// 可视对象（每个格子一个精灵实体）。实体在场景初始化时一次性
// 创建，网格存续期间不增不减。
package ecs

import "reflect"

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1, // ID从1开始,0保留为无效ID
		components: make(map[EntityID]map[reflect.Type]interface{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetComponent 获取实体的指定类型组件（泛型版本）
//
// 使用示例：
//
//	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[reflect.TypeOf(zero)]
	if !found {
		return zero, false
	}
	return comp.(T), true
}

// GetEntitiesWith1 查询拥有指定组件类型的所有实体（泛型版本）
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	var t1 T1
	type1 := reflect.TypeOf(t1)

	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[type1]; ok {
			result = append(result, id)
		}
	}
	return result
}

// GetEntitiesWith2 查询同时拥有两种组件类型的所有实体（泛型版本）
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var t1 T1
	var t2 T2
	type1 := reflect.TypeOf(t1)
	type2 := reflect.TypeOf(t2)

	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[type1]; !ok {
			continue
		}
		if _, ok := compMap[type2]; !ok {
			continue
		}
		result = append(result, id)
	}
	return result
}
