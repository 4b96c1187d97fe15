package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestMove_NoCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/photo.png", "p")

	dst, err := NewMover(fs).Move("/src/photo.png", "/keep")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if dst != filepath.Join("/keep", "photo.png") {
		t.Fatalf("期望 dst=/keep/photo.png，实际=%q", dst)
	}
	assertContent(t, fs, dst, "p")
	assertMissing(t, fs, "/src/photo.png")
}

func TestMove_CreatesMissingDestDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/a.png", "a")

	dst, err := NewMover(fs).Move("/src/a.png", "/out/x/y")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if ok, _ := afero.DirExists(fs, "/out/x/y"); !ok {
		t.Fatalf("目标目录未被创建")
	}
	// 目标路径本身必须是文件，而不是被误建成目录。
	assertContent(t, fs, dst, "a")
}

func TestMove_CollisionAppendsSuffix(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a/photo.png", "first")
	writeFile(t, fs, "/b/photo.png", "second")
	writeFile(t, fs, "/c/photo.png", "third")

	m := NewMover(fs)
	d1, err := m.Move("/a/photo.png", "/keep")
	if err != nil {
		t.Fatalf("第一次移动失败：%v", err)
	}
	d2, err := m.Move("/b/photo.png", "/keep")
	if err != nil {
		t.Fatalf("第二次移动失败：%v", err)
	}
	d3, err := m.Move("/c/photo.png", "/keep")
	if err != nil {
		t.Fatalf("第三次移动失败：%v", err)
	}

	want := []string{
		filepath.Join("/keep", "photo.png"),
		filepath.Join("/keep", "photo_.png"),
		filepath.Join("/keep", "photo__.png"),
	}
	got := []string{d1, d2, d3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("第 %d 次目标不符合预期：期望 %q，实际 %q", i+1, want[i], got[i])
		}
	}
	assertContent(t, fs, d1, "first")
	assertContent(t, fs, d2, "second")
	assertContent(t, fs, d3, "third")
}

func TestMove_CollisionKeepsLastExtensionOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/keep/a.tar.png", "old")
	writeFile(t, fs, "/src/a.tar.png", "new")

	dst, err := NewMover(fs).Move("/src/a.tar.png", "/keep")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if filepath.Base(dst) != "a.tar_.png" {
		t.Fatalf("期望 a.tar_.png，实际 %q", filepath.Base(dst))
	}
	assertContent(t, fs, "/keep/a.tar.png", "old")
}

func TestMove_InvalidSource(t *testing.T) {
	m := NewMover(afero.NewMemMapFs())
	for _, src := range []string{"", ".", "..", string(filepath.Separator)} {
		if _, err := m.Move(src, "/keep"); !IsInvalidPath(err) {
			t.Fatalf("src=%q 期望 InvalidPathError，实际：%T %v", src, err, err)
		}
	}
	if _, err := m.Move("/src/a.png", " "); !IsInvalidPath(err) {
		t.Fatalf("空目标目录期望 InvalidPathError，实际：%T %v", err, err)
	}
}

func TestMove_MissingSourceIsMoveError(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := NewMover(fs).Move("/src/gone.png", "/keep")
	var me *MoveError
	if !errors.As(err, &me) {
		t.Fatalf("期望 MoveError，实际：%T %v", err, err)
	}
	if me.Op != "rename" || me.Src != "/src/gone.png" {
		t.Fatalf("MoveError 字段不符合预期：%+v", me)
	}
}

func TestMove_DestDirIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/a.png", "a")
	writeFile(t, fs, "/keep", "not a dir")

	_, err := NewMover(fs).Move("/src/a.png", "/keep")
	if !IsDirectoryCreate(err) {
		t.Fatalf("期望 DirectoryCreateError，实际：%T %v", err, err)
	}
	assertContent(t, fs, "/src/a.png", "a")
}

func TestMove_DestDirCreateFails_OS(t *testing.T) {
	root := t.TempDir()
	fs := afero.NewOsFs()
	src := filepath.Join(root, "a.png")
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	_, err := NewMover(fs).Move(src, filepath.Join(blocker, "sub"))
	if !IsDirectoryCreate(err) {
		t.Fatalf("期望 DirectoryCreateError，实际：%T %v", err, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("源文件应保持不动：%v", err)
	}
}

func TestMove_RealFS(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "photo.png")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(src, []byte("p"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	dst, err := NewMover(afero.NewOsFs()).Move(src, filepath.Join(root, "keep"))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("目标文件不存在：%v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("源文件应已不存在，stat err=%v", err)
	}
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入文件失败 %q：%v", path, err)
	}
}

func assertContent(t *testing.T, fs afero.Fs, path, want string) {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("读取 %q 失败：%v", path, err)
	}
	if string(b) != want {
		t.Fatalf("%q 内容不一致：期望 %q，实际 %q", path, want, string(b))
	}
}

func assertMissing(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); ok {
		t.Fatalf("%q 不应存在", path)
	}
}

func TestMove_LeadingDotOnlyNameKeepsWholeStem(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/keep/.png", "old")
	writeFile(t, fs, "/src/.png", "new")

	dst, err := NewMover(fs).Move("/src/.png", "/keep")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if filepath.Base(dst) != ".png_" {
		t.Fatalf("期望 .png_（整个名字是主干），实际 %q", filepath.Base(dst))
	}
	assertContent(t, fs, "/keep/.png", "old")
}

// statFailFs 对指定路径的 Stat 返回固定错误，并记录是否调用过 MkdirAll。
type statFailFs struct {
	afero.Fs
	path     string
	err      error
	mkdirAll *bool
}

func (f statFailFs) Stat(name string) (os.FileInfo, error) {
	if name == f.path {
		return nil, f.err
	}
	return f.Fs.Stat(name)
}

func (f statFailFs) MkdirAll(path string, perm os.FileMode) error {
	*f.mkdirAll = true
	return f.Fs.MkdirAll(path, perm)
}

func TestMove_DestDirStatErrorNotMkdir(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, "/src/a.png", "a")
	called := false
	fs := statFailFs{Fs: mem, path: "/keep", err: &os.PathError{Op: "stat", Path: "/keep", Err: os.ErrPermission}, mkdirAll: &called}

	_, err := NewMover(fs).Move("/src/a.png", "/keep")
	if !IsDirectoryCreate(err) {
		t.Fatalf("期望 DirectoryCreateError，实际：%T %v", err, err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("应保留原始原因，实际：%v", err)
	}
	if called {
		t.Fatalf("非 not-exist 的 stat 错误不应尝试 MkdirAll")
	}
	assertContent(t, mem, "/src/a.png", "a")
}
