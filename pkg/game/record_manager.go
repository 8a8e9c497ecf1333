package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecord 跨进程保存的播放记录
type RunRecord struct {
	CompletedRuns int   `yaml:"completedRuns"` // 完整播放次数
	BestRunMs     int64 `yaml:"bestRunMs"`     // 最快一次播放耗时（毫秒），0 表示尚无记录
	LastRunMs     int64 `yaml:"lastRunMs"`     // 最近一次播放耗时（毫秒）
}

// 存储路径常量
const (
	recordObject   = "records"
	recordProperty = "runs"
)

// RecordManager 播放记录管理器
// 负责记录的加载、保存和内存管理
type RecordManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	record       RunRecord
}

// NewRecordManager 创建新的记录管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//
// 返回：
//   - *RecordManager: 记录管理器实例（加载失败时使用空记录）
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{gdataManager: gdataManager}

	if err := rm.Load(); err != nil {
		// 加载失败不是致命错误，使用空记录
		log.Printf("[RecordManager] Warning: Failed to load records: %v (starting fresh)", err)
	}

	return rm
}

// OpenRecordStorage 打开应用的 gdata 存储
// 失败时返回 nil 和错误，调用方可以继续以降级模式运行
func OpenRecordStorage(appName string) (*gdata.Manager, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return manager, nil
}

// Load 从 gdata 加载记录
//
// 如果 gdataManager 为 nil 或记录不存在，使用空记录
func (rm *RecordManager) Load() error {
	rm.record = RunRecord{}

	if rm.gdataManager == nil {
		return nil
	}

	if !rm.gdataManager.ObjectPropExists(recordObject, recordProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded RunRecord
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}

	rm.record = loaded
	log.Printf("[RecordManager] Records loaded: %d runs, best %dms", loaded.CompletedRuns, loaded.BestRunMs)
	return nil
}

// Save 保存记录到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&rm.record)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := rm.gdataManager.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}

// RecordRun 记录一次完整播放并立即保存
//
// 返回：
//   - bool: 是否刷新了最快记录
func (rm *RecordManager) RecordRun(d time.Duration) bool {
	ms := d.Milliseconds()
	rm.record.CompletedRuns++
	rm.record.LastRunMs = ms

	newBest := rm.record.BestRunMs == 0 || ms < rm.record.BestRunMs
	if newBest {
		rm.record.BestRunMs = ms
	}

	if err := rm.Save(); err != nil {
		log.Printf("[RecordManager] Warning: %v", err)
	}
	return newBest
}

// GetRecord 返回当前记录的副本
func (rm *RecordManager) GetRecord() RunRecord {
	return rm.record
}

// Summary 返回 HUD 显示用的单行摘要
func (rm *RecordManager) Summary() string {
	if rm.record.CompletedRuns == 0 {
		return "Runs: 0"
	}
	return fmt.Sprintf("Runs: %d    Best: %.2fs", rm.record.CompletedRuns,
		float64(rm.record.BestRunMs)/1000)
}
