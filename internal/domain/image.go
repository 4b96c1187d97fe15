package domain

import (
	"fmt"
	"strings"
)

// ImagePath 是一次扫描得到的候选图片路径。
//
// 不变量：
// - 扫描产出后不再修改
// - 随时可能失效（用户或其他进程移走/删除了文件），使用前必须视为“可能过期”
type ImagePath string

func (p ImagePath) String() string { return string(p) }

// Ext 返回文件名的扩展名（含 "."），规则与 filepath.Ext 的区别：
// 只有一个前导点的名字（".png"、".hidden"）没有扩展名，整个名字都是主干。
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}

// SplitExt 把文件名拆成主干与扩展名；主干永远非空（name 非空时）。
func SplitExt(name string) (stem, ext string) {
	ext = Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// Slot 是目标目录槽位（恰好两个）。
type Slot int

const (
	SlotUp Slot = iota
	SlotDown
)

// SlotCount 是目标槽位数量（固定为 2）。
const SlotCount = 2

// Valid 判断槽位是否合法。
func (s Slot) Valid() bool {
	return s >= 0 && int(s) < SlotCount
}

func (s Slot) String() string {
	switch s {
	case SlotUp:
		return "up"
	case SlotDown:
		return "down"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}
