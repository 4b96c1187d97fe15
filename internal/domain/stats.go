package domain

import (
	"encoding/json"
	"time"
)

// SessionStats 是一次会话（进程生命周期）内的操作统计，只在内存中累计，退出时输出。
type SessionStats struct {
	SourceDir string `json:"source_dir"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	MovedUp   int `json:"moved_up"`
	MovedDown int `json:"moved_down"`
	Rescans   int `json:"rescans"`
	Failed    int `json:"failed"`

	// Remaining 是结束时候选列表中剩余的图片数。
	Remaining int `json:"remaining"`
}

// RecordMove 按槽位累计一次成功移动。
func (s *SessionStats) RecordMove(slot Slot) {
	switch slot {
	case SlotUp:
		s.MovedUp++
	case SlotDown:
		s.MovedDown++
	}
}

// Moved 返回两个槽位的移动总数。
func (s SessionStats) Moved() int {
	return s.MovedUp + s.MovedDown
}

// Finalize 把时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）。
func (s *SessionStats) Finalize(remaining int, now time.Time) {
	s.Remaining = remaining
	s.FinishedAt = now.UTC()
	s.StartedAt = s.StartedAt.UTC()
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
func (s SessionStats) MarshalJSON() ([]byte, error) {
	type Alias SessionStats
	return json.Marshal(Alias(s))
}
