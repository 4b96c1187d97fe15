package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// failRenameFs 让 Rename 固定失败，其余操作透传。
type failRenameFs struct {
	afero.Fs
	err error
}

func (f failRenameFs) Rename(oldname, newname string) error { return f.err }

func TestWriteFileAtomic_SuccessAndNoTempLeft(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	if err := WriteFileAtomicReplace(fs, dir, "a.yaml", []byte("hello")); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.yaml"))
	if err != nil {
		t.Fatalf("读取文件失败：%v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("内容不一致：%q", string(b))
	}

	assertNoTemp(t, fs, dir, "a.yaml")
}

func TestWriteFileAtomic_RenameFail_CleanupTemp(t *testing.T) {
	fs := failRenameFs{Fs: afero.NewMemMapFs(), err: os.ErrPermission}

	err := WriteFileAtomicReplace(fs, "/cfg", "a.yaml", []byte("hello"))
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("期望 ErrPermission，实际：%v", err)
	}

	entries, err := afero.ReadDir(fs, "/cfg")
	if err != nil {
		t.Fatalf("ReadDir 失败：%v", err)
	}
	for _, e := range entries {
		if e.Name() == "a.yaml" {
			t.Fatalf("不应写出最终文件：%q", e.Name())
		}
	}
	assertNoTemp(t, fs, "/cfg", "a.yaml")
}

func TestWriteFileAtomicNoOverwrite_Exists(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg/a.yaml", []byte("old"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	err := WriteFileAtomicNoOverwrite(fs, "/cfg", "a.yaml", []byte("new"))
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("期望 os.ErrExist，实际：%v", err)
	}
	b, _ := afero.ReadFile(fs, "/cfg/a.yaml")
	if string(b) != "old" {
		t.Fatalf("已有文件不应被覆盖：%q", string(b))
	}
}

func TestWriteFileAtomicNoOverwrite_TargetConflictDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	// 目标路径是目录：应返回 PathTypeConflictError，而不是 os.ErrExist。
	if err := fs.MkdirAll("/cfg/a.yaml", 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}

	err := WriteFileAtomicNoOverwrite(fs, "/cfg", "a.yaml", []byte("hello"))
	if !IsPathTypeConflict(err) {
		t.Fatalf("期望 PathTypeConflictError，实际：%T %v", err, err)
	}
}

func TestRename_OtherErrorNotCrossDevice(t *testing.T) {
	fs := failRenameFs{Fs: afero.NewMemMapFs(), err: os.ErrPermission}

	err := Rename(fs, "/a", "/b")
	if err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
	if IsCrossDevice(err) {
		t.Fatalf("普通错误不应被标记为 CrossDeviceError：%v", err)
	}
}

func assertNoTemp(t *testing.T, fs afero.Fs, dir, name string) {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Fatalf("ReadDir 失败：%v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "."+name+".tmp-") {
			t.Fatalf("临时文件未清理：%q", e.Name())
		}
	}
}
