package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/citygrid/pkg/grid"
	"github.com/decker502/citygrid/pkg/zone"
)

// ErrNoSave 没有可加载的存档
var ErrNoSave = errors.New("no city save found")

// CitySaveData 城市存档数据结构
//
// 区划按配置ID而非数值序号保存，这样调整配置中区划的顺序
// 或新增区划都不会破坏旧存档；只有删除仍在使用的区划才会使
// 存档失效（加载时报错）。
type CitySaveData struct {
	Width  int      `yaml:"width"`  // 存档时的网格列数
	Height int      `yaml:"height"` // 存档时的网格行数
	Zones  []string `yaml:"zones"`  // 每个格子的区划ID，按线性索引排列
}

// SaveManager 城市存档管理器
//
// 职责：
//   - 把网格的区划状态整体序列化/反序列化
//   - 校验存档与当前配置的兼容性（网格尺寸、区划ID）
//
// 架构说明：
//   - 数据经 yaml 序列化后存入 gdata 跨平台存储
//   - 由场景在显式存档、读档和退出时调用，不直接与系统交互
type SaveManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，无法持久化）
}

// 存储路径常量
const (
	cityObject   = "city"
	cityProperty = "grid"
)

// NewSaveManager 创建城市存档管理器
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	return &SaveManager{gdataManager: gdataManager}
}

// HasSave 检查是否存在存档
func (sm *SaveManager) HasSave() bool {
	if sm.gdataManager == nil {
		return false
	}
	return sm.gdataManager.ObjectPropExists(cityObject, cityProperty)
}

// Save 保存网格的当前区划状态
//
// 如果 gdataManager 为 nil，记录日志并返回 nil（降级模式，不报错）
func (sm *SaveManager) Save(store *grid.TileStore, zones *zone.Set) error {
	if sm.gdataManager == nil {
		log.Printf("[SaveManager] storage unavailable, skipping save")
		return nil
	}

	kinds := store.Zones()
	ids := make([]string, len(kinds))
	for i, k := range kinds {
		ids[i] = zones.ID(k)
	}

	payload := CitySaveData{
		Width:  store.Width(),
		Height: store.Height(),
		Zones:  ids,
	}

	data, err := yaml.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("failed to marshal city save: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(cityObject, cityProperty, data); err != nil {
		return fmt.Errorf("failed to save city: %w", err)
	}

	log.Printf("[SaveManager] city saved (%dx%d)", payload.Width, payload.Height)
	return nil
}

// Load 加载存档并恢复到网格
//
// 校验：
//   - 存档尺寸必须与当前网格一致
//   - 存档中的区划ID必须仍然存在于当前区划集合
//
// 恢复成功后所有格子被标记为脏，渲染层会全量刷新一次。
func (sm *SaveManager) Load(store *grid.TileStore, zones *zone.Set) error {
	if sm.gdataManager == nil || !sm.HasSave() {
		return ErrNoSave
	}

	data, err := sm.gdataManager.LoadObjectProp(cityObject, cityProperty)
	if err != nil {
		return fmt.Errorf("failed to load city save: %w", err)
	}

	var payload CitySaveData
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal city save: %w", err)
	}

	if payload.Width != store.Width() || payload.Height != store.Height() {
		return fmt.Errorf("save grid %dx%d does not match current grid %dx%d",
			payload.Width, payload.Height, store.Width(), store.Height())
	}
	if len(payload.Zones) != store.Width()*store.Height() {
		return fmt.Errorf("save has %d tiles, expected %d",
			len(payload.Zones), store.Width()*store.Height())
	}

	kinds := make([]zone.Kind, len(payload.Zones))
	for i, id := range payload.Zones {
		k, ok := zones.KindOf(id)
		if !ok {
			return fmt.Errorf("save references unknown zone id %q", id)
		}
		kinds[i] = k
	}

	if err := store.Restore(kinds); err != nil {
		return fmt.Errorf("failed to restore city: %w", err)
	}

	log.Printf("[SaveManager] city loaded (%dx%d)", payload.Width, payload.Height)
	return nil
}
