package scan

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/logger"
)

// DefaultExt 是唯一接受的图片扩展名（大小写敏感）。
const DefaultExt = ".png"

// DirectoryReadError 表示目录无法列出（不存在/无权限/不是目录），或某个条目的元信息无法读取。
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("读取目录失败：%q：%v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }

// IsDirectoryRead 判断 err 是否为 DirectoryReadError。
func IsDirectoryRead(err error) bool {
	var e *DirectoryReadError
	return errors.As(err, &e)
}

// ScanImages 列出 dir 下扩展名与 ext 完全一致的直接子文件。
//
// 规则（硬约束）：
// - 不递归子目录；目录本身永远不是候选（即使名字以 ext 结尾）
// - 扩展名大小写敏感，精确匹配；不匹配的条目静默跳过，不算错误
// - 只有前导点的名字（例如 ".png"）没有扩展名，不是候选
// - 输出顺序 = 文件系统层的枚举顺序（afero 按名字排序，结果稳定）
// - 不缓存、不监听：结果只是调用时刻的快照
func ScanImages(fs afero.Fs, dir, ext string) ([]domain.ImagePath, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, &DirectoryReadError{Path: dir, Err: err}
	}

	out := make([]domain.ImagePath, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			return nil, &DirectoryReadError{Path: dir, Err: errors.New("目录条目元信息为空")}
		}
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if domain.Ext(name) != ext {
			continue
		}
		out = append(out, domain.ImagePath(filepath.Join(dir, name)))
	}

	logger.Get().Debug().
		Str("dir", dir).
		Int("entries", len(entries)).
		Int("images", len(out)).
		Msg("扫描完成")
	return out, nil
}
