package game

import (
	"os"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 在临时 HOME 下创建 gdata 管理器
func createTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// TestRecordManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestRecordManagerNilGdata(t *testing.T) {
	rm := NewRecordManager(nil)

	if got := rm.GetRecord(); got != (RunRecord{}) {
		t.Errorf("initial record: got %+v, want zero", got)
	}

	if !rm.RecordRun(3 * time.Second) {
		t.Error("first run should be a new best")
	}

	rec := rm.GetRecord()
	if rec.CompletedRuns != 1 || rec.BestRunMs != 3000 || rec.LastRunMs != 3000 {
		t.Errorf("record after one run: got %+v", rec)
	}

	if err := rm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not error: %v", err)
	}
}

// TestRecordManagerBestRun 测试最快记录只在更快时刷新
func TestRecordManagerBestRun(t *testing.T) {
	tests := []struct {
		name     string
		runs     []time.Duration
		wantBest int64
		wantLast int64
	}{
		{
			name:     "单次播放",
			runs:     []time.Duration{4200 * time.Millisecond},
			wantBest: 4200,
			wantLast: 4200,
		},
		{
			name:     "更慢的播放不刷新记录",
			runs:     []time.Duration{4 * time.Second, 5 * time.Second},
			wantBest: 4000,
			wantLast: 5000,
		},
		{
			name:     "更快的播放刷新记录",
			runs:     []time.Duration{5 * time.Second, 3 * time.Second, 4 * time.Second},
			wantBest: 3000,
			wantLast: 4000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewRecordManager(nil)
			for _, d := range tt.runs {
				rm.RecordRun(d)
			}

			rec := rm.GetRecord()
			if rec.CompletedRuns != len(tt.runs) {
				t.Errorf("CompletedRuns: got %d, want %d", rec.CompletedRuns, len(tt.runs))
			}
			if rec.BestRunMs != tt.wantBest {
				t.Errorf("BestRunMs: got %d, want %d", rec.BestRunMs, tt.wantBest)
			}
			if rec.LastRunMs != tt.wantLast {
				t.Errorf("LastRunMs: got %d, want %d", rec.LastRunMs, tt.wantLast)
			}
		})
	}
}

// TestRecordManagerPersistence 测试记录跨实例持久化
func TestRecordManagerPersistence(t *testing.T) {
	manager := createTestGdataManager(t, "test_chainreact_records")

	rm := NewRecordManager(manager)
	rm.RecordRun(2500 * time.Millisecond)
	rm.RecordRun(3500 * time.Millisecond)

	reloaded := NewRecordManager(manager)
	rec := reloaded.GetRecord()
	if rec.CompletedRuns != 2 {
		t.Errorf("CompletedRuns after reload: got %d, want 2", rec.CompletedRuns)
	}
	if rec.BestRunMs != 2500 {
		t.Errorf("BestRunMs after reload: got %d, want 2500", rec.BestRunMs)
	}
}

// TestRecordManagerSummary 测试 HUD 摘要
func TestRecordManagerSummary(t *testing.T) {
	rm := NewRecordManager(nil)
	if got := rm.Summary(); got != "Runs: 0" {
		t.Errorf("Summary() before runs: got %q", got)
	}

	rm.RecordRun(1250 * time.Millisecond)
	if got, want := rm.Summary(), "Runs: 1    Best: 1.25s"; got != want {
		t.Errorf("Summary(): got %q, want %q", got, want)
	}
}
