package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/logger"
)

// CollisionSuffix 在重名时追加到文件名主干（扩展名之前）。
const CollisionSuffix = "_"

// MoveError 表示 stat/rename/copy/remove 的失败（跨盘回退本身不算错误）。
//
// 源文件状态：
// - Op=stat|rename|copy：源文件仍在原位
// - Op=remove：副本已完整写入 Dst，但源文件未能删除（两处都存在）
type MoveError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("移动文件失败（%s）：%q -> %q：%v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

func IsMoveError(err error) bool {
	var e *MoveError
	return errors.As(err, &e)
}

// InvalidPathError 表示路径缺少文件名部分（例如 ""、"."、"/"）。
// 属于调用方的编程错误，不可重试。
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("非法路径 %q：%s", e.Path, e.Reason)
}

func IsInvalidPath(err error) bool {
	var e *InvalidPathError
	return errors.As(err, &e)
}

// Mover 把单个文件移动到目标目录。无内部状态，可按值复制。
type Mover struct {
	Fs afero.Fs
}

func NewMover(fs afero.Fs) Mover {
	return Mover{Fs: fs}
}

// Move 把 src 移动到 destDir 下，返回实际使用的目标路径。
//
// 步骤（顺序固定）：
// 1) 目标名 = destDir/<src 的文件名>
// 2) destDir 不存在则 MkdirAll；失败返回 DirectoryCreateError，源文件不动
// 3) 重名则在主干后不断追加 "_"（photo.png -> photo_.png -> photo__.png），从不覆盖
// 4) 尝试原子 rename
// 5) EXDEV：copy（O_EXCL 创建）+ 删除源文件；非原子，被中断时两处可能同时存在
// 6) 其他失败返回 MoveError；未完整复制前绝不删除源文件
func (m Mover) Move(src, destDir string) (string, error) {
	name, err := fileName(src)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(destDir) == "" {
		return "", &InvalidPathError{Path: destDir, Reason: "目标目录为空"}
	}

	if err := m.ensureDir(destDir); err != nil {
		return "", err
	}

	dst, err := m.resolveDest(destDir, name)
	if err != nil {
		return "", &MoveError{Op: "stat", Src: src, Dst: filepath.Join(destDir, name), Err: err}
	}

	log := logger.Get()
	err = Rename(m.Fs, src, dst)
	if err == nil {
		log.Info().Str("src", src).Str("dst", dst).Msg("已移动")
		return dst, nil
	}
	if !IsCrossDevice(err) {
		return "", &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
	}

	log.Debug().Err(err).Str("src", src).Str("dst", dst).Msg("跨盘 rename 失败，改用复制后删除")
	if err := m.copyFile(src, dst); err != nil {
		return "", &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	if err := m.Fs.Remove(src); err != nil {
		return "", &MoveError{Op: "remove", Src: src, Dst: dst, Err: err}
	}
	log.Info().Str("src", src).Str("dst", dst).Bool("cross_device", true).Msg("已移动")
	return dst, nil
}

func fileName(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", &InvalidPathError{Path: src, Reason: "路径为空"}
	}
	name := filepath.Base(src)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", &InvalidPathError{Path: src, Reason: "缺少文件名"}
	}
	return name, nil
}

func (m Mover) ensureDir(dir string) error {
	fi, err := m.Fs.Stat(dir)
	if err == nil {
		if !fi.IsDir() {
			return &DirectoryCreateError{Dir: dir, Err: &PathTypeConflictError{Path: dir, Want: "dir", Got: "file"}}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return &DirectoryCreateError{Dir: dir, Err: err}
	}
	if err := m.Fs.MkdirAll(dir, 0o755); err != nil {
		return &DirectoryCreateError{Dir: dir, Err: err}
	}
	return nil
}

// resolveDest 线性探测第一个不存在的文件名。每次候选都严格延长上一次的主干，扩展名保持不变。
func (m Mover) resolveDest(dir, name string) (string, error) {
	stem, ext := domain.SplitExt(name)
	for {
		cand := filepath.Join(dir, stem+ext)
		exists, err := m.exists(cand)
		if err != nil {
			return "", err
		}
		if !exists {
			return cand, nil
		}
		stem += CollisionSuffix
	}
}

// exists 用 Lstat（若支持）判断占位：悬空的符号链接同样算“已被占用”。
func (m Mover) exists(path string) (bool, error) {
	var err error
	if ls, ok := m.Fs.(afero.Lstater); ok {
		_, _, err = ls.LstatIfPossible(path)
	} else {
		_, err = m.Fs.Stat(path)
	}
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// copyFile 把 src 的内容复制到新建的 dst（O_EXCL：绝不覆盖已有文件）。
// 失败时删除不完整的 dst，源文件保持不动。
func (m Mover) copyFile(src, dst string) error {
	in, err := m.Fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return &PathTypeConflictError{Path: src, Want: "file", Got: "dir"}
	}

	out, err := m.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		return err
	}
	discard := func() {
		_ = out.Close()
		_ = m.Fs.Remove(dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		discard()
		return err
	}
	if err := out.Sync(); err != nil {
		discard()
		return err
	}
	if err := out.Close(); err != nil {
		_ = m.Fs.Remove(dst)
		return err
	}

	// 保留修改时间：best-effort，失败不影响移动结果。
	_ = m.Fs.Chtimes(dst, fi.ModTime(), fi.ModTime())
	return nil
}
