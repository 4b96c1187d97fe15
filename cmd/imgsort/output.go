package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/John-Robertt/imgsort/internal/domain"
)

func summaryLine(s domain.SessionStats) string {
	return fmt.Sprintf("完成：moved_up=%d moved_down=%d rescans=%d failed=%d",
		s.MovedUp, s.MovedDown, s.Rescans, s.Failed,
	)
}

// emitSummary 输出会话摘要。
//
// stdout 是 TTY：输出一行人类可读摘要；
// 否则 stdout 必须且仅输出一个 SessionStats JSON（摘要行走 stderr）。
func emitSummary(stdout, stderr io.Writer, tty bool, s domain.SessionStats) error {
	if tty {
		_, err := fmt.Fprintln(stdout, summaryLine(s))
		return err
	}
	if err := json.NewEncoder(stdout).Encode(s); err != nil {
		return err
	}
	fmt.Fprintln(stderr, summaryLine(s))
	return nil
}

// emitList 输出候选列表：TTY 每行一个路径，否则输出 JSON 数组。
func emitList(stdout io.Writer, tty bool, items []domain.ImagePath) error {
	if tty {
		for _, it := range items {
			if _, err := fmt.Fprintln(stdout, it); err != nil {
				return err
			}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.String())
	}
	return json.NewEncoder(stdout).Encode(out)
}
