package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	IsPaused bool // 是否暂停（暂停时屏蔽网格交互）

	settingsManager *SettingsManager
	saveManager     *SaveManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{}
	}
	return globalGameState
}

// TogglePause 切换暂停状态
func (gs *GameState) TogglePause() {
	gs.IsPaused = !gs.IsPaused
}

// GetSettingsManager 返回设置管理器，首次调用时创建
// gdata 打开失败时以降级模式创建（仅内存设置，不持久化）
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		gs.settingsManager = newSettingsManagerWithStorage()
	}
	return gs.settingsManager
}

// GetSaveManager 返回存档管理器，首次调用时创建
// gdata 打开失败时以降级模式创建（无法持久化）
func (gs *GameState) GetSaveManager() *SaveManager {
	if gs.saveManager == nil {
		gs.saveManager = NewSaveManager(openStorage())
	}
	return gs.saveManager
}

// openStorage 打开 gdata 跨平台存储
// 失败时返回 nil，调用方进入降级模式
func openStorage() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{
		AppName: "citygrid",
	})
	if err != nil {
		log.Printf("[GameState] Warning: failed to open gdata storage: %v (running without persistence)", err)
		return nil
	}
	return m
}

func newSettingsManagerWithStorage() *SettingsManager {
	sm, err := NewSettingsManager(openStorage())
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init: %v", err)
	}
	return sm
}
