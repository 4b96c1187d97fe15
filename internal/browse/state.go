// Package browse 维护“当前正在看哪张图”的状态，并让它与可能被外部修改的目录保持一致。
//
// 状态只有两种：Empty（候选列表为空）与 Viewing(i)（i 是合法下标）。
// 所有方法都在同一个逻辑线程上同步执行，因此不需要锁。
package browse

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/infra/fsx"
	"github.com/John-Robertt/imgsort/internal/logger"
	"github.com/John-Robertt/imgsort/internal/scan"
)

// ErrInvalidSlot 表示展示层传入了不存在的目标槽位。
var ErrInvalidSlot = errors.New("browse: 非法的目标槽位")

// Scanner 列出目录中的候选图片。
type Scanner interface {
	Scan(dir string) ([]domain.ImagePath, error)
}

// Mover 把单个文件移动到目标目录，返回实际使用的目标路径。
type Mover interface {
	Move(src, destDir string) (string, error)
}

// ScannerFunc 让普通函数满足 Scanner。
type ScannerFunc func(dir string) ([]domain.ImagePath, error)

func (f ScannerFunc) Scan(dir string) ([]domain.ImagePath, error) { return f(dir) }

// State 拥有候选列表与当前下标。
type State struct {
	fs      afero.Fs
	scanner Scanner
	mover   Mover
	now     func() time.Time

	sourceDir string
	dests     [domain.SlotCount]string

	items []domain.ImagePath
	idx   int

	stats domain.SessionStats
}

// Option 定制 State 的协作者。
type Option func(*State)

// WithScanner 替换默认的目录扫描器。
func WithScanner(s Scanner) Option {
	return func(st *State) { st.scanner = s }
}

// WithMover 替换默认的移动引擎。
func WithMover(m Mover) Option {
	return func(st *State) { st.mover = m }
}

// WithClock 替换时间源（测试用）。
func WithClock(now func() time.Time) Option {
	return func(st *State) { st.now = now }
}

// New 创建一个空状态（Empty），尚未设置源目录。
// 默认协作者：scan.ScanImages（.png）与 fsx.Mover，均基于同一个 fs。
func New(fs afero.Fs, opts ...Option) *State {
	st := &State{
		fs:  fs,
		now: time.Now,
	}
	for _, o := range opts {
		o(st)
	}
	if st.scanner == nil {
		st.scanner = ScannerFunc(func(dir string) ([]domain.ImagePath, error) {
			return scan.ScanImages(fs, dir, scan.DefaultExt)
		})
	}
	if st.mover == nil {
		st.mover = fsx.NewMover(fs)
	}
	st.stats.StartedAt = st.now()
	return st
}

// SetSourceDirectory 替换源目录并全量重扫，下标归零。
// 路径按原样保存；只有全空白才视为未设置。
//
// 扫描失败时列表被清空（不保留过期数据），并返回 *scan.DirectoryReadError。
func (s *State) SetSourceDirectory(path string) error {
	s.sourceDir = path
	if strings.TrimSpace(path) == "" {
		s.sourceDir = ""
	}
	s.stats.SourceDir = s.sourceDir
	return s.rescan("set_source")
}

// SetDestination 设置或清除（空白字符串）某个目标槽位；非空路径按原样保存。
func (s *State) SetDestination(slot domain.Slot, path string) error {
	if !slot.Valid() {
		return ErrInvalidSlot
	}
	s.dests[slot] = path
	if strings.TrimSpace(path) == "" {
		s.dests[slot] = ""
	}
	return nil
}

// Refresh 对当前源目录做一次显式重扫。
func (s *State) Refresh() error {
	return s.rescan("refresh")
}

// Next 前进一张（越过末尾回到 0）。
// 若当前图片已不在磁盘上，则视为列表过期：重扫而不移动下标。
func (s *State) Next() error {
	return s.step(+1)
}

// Previous 后退一张（越过开头回到最后一张），过期处理同 Next。
func (s *State) Previous() error {
	return s.step(-1)
}

func (s *State) step(delta int) error {
	cur, ok := s.Current()
	if !ok {
		return nil
	}
	if !s.exists(cur) {
		return s.rescan("stale")
	}
	n := len(s.items)
	s.idx = ((s.idx+delta)%n + n) % n
	return nil
}

// MoveCurrentTo 把当前图片移动到 slot 对应的目标目录，返回实际目标路径。
//
// - 没有当前图片或槽位未配置：no-op（返回 "", nil）
// - 当前图片已消失：重扫，不尝试移动
// - 移动成功：从列表删除当前项；下标越界则回到 0；列表变空则重扫（可能出现了新文件）
// - 移动失败：原样返回错误，状态保持不变（可恢复，由展示层提示用户）
func (s *State) MoveCurrentTo(slot domain.Slot) (string, error) {
	if !slot.Valid() {
		return "", ErrInvalidSlot
	}
	cur, ok := s.Current()
	if !ok || s.dests[slot] == "" {
		return "", nil
	}
	if !s.exists(cur) {
		return "", s.rescan("stale")
	}

	dst, err := s.mover.Move(string(cur), s.dests[slot])
	if err != nil {
		s.stats.Failed++
		logger.Get().Error().Err(err).Str("src", string(cur)).Str("slot", slot.String()).Msg("移动失败")
		return "", err
	}
	s.stats.RecordMove(slot)

	s.items = append(s.items[:s.idx], s.items[s.idx+1:]...)
	if s.idx >= len(s.items) {
		s.idx = 0
	}
	if len(s.items) == 0 {
		if err := s.rescan("drained"); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// rescan 从磁盘重新推导整个列表（唯一的“修复”手段）。
func (s *State) rescan(reason string) error {
	s.idx = 0
	s.stats.Rescans++
	log := logger.Get()

	if s.sourceDir == "" {
		s.items = nil
		log.Debug().Str("reason", reason).Msg("未设置源目录，候选列表为空")
		return nil
	}

	items, err := s.scanner.Scan(s.sourceDir)
	if err != nil {
		s.items = nil
		log.Warn().Err(err).Str("dir", s.sourceDir).Str("reason", reason).Msg("重扫失败，候选列表置空")
		return err
	}
	s.items = items
	log.Info().Str("dir", s.sourceDir).Str("reason", reason).Int("images", len(items)).Msg("已重扫")
	return nil
}

// exists 判断文件是否仍在；任何 stat 错误都按“已消失”处理（交给重扫修复）。
func (s *State) exists(p domain.ImagePath) bool {
	_, err := s.fs.Stat(string(p))
	return err == nil
}

// Current 返回当前图片（若有）。
func (s *State) Current() (domain.ImagePath, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[s.idx], true
}

// HasCurrent 是否处于 Viewing 状态。
func (s *State) HasCurrent() bool {
	return len(s.items) > 0
}

// DestinationConfigured 某个槽位是否已配置（未配置时对应移动动作应被禁用）。
func (s *State) DestinationConfigured(slot domain.Slot) bool {
	return slot.Valid() && s.dests[slot] != ""
}

// SourceDir 返回当前源目录。
func (s *State) SourceDir() string { return s.sourceDir }

// Len 返回候选列表长度。
func (s *State) Len() int { return len(s.items) }

// Index 返回当前下标（Empty 时为 0，无意义）。
func (s *State) Index() int { return s.idx }

// View 返回给展示层的只读快照。
func (s *State) View() domain.View {
	v := domain.View{
		SourceDir: s.sourceDir,
		Index:     s.idx,
		Total:     len(s.items),
		Dest:      s.dests,
	}
	v.Current, v.HasCurrent = s.Current()
	for i := range s.dests {
		v.DestConfigured[i] = s.dests[i] != ""
	}
	return v
}

// Stats 返回截至目前的会话统计（Remaining/FinishedAt 已按当前时刻填充）。
func (s *State) Stats() domain.SessionStats {
	out := s.stats
	out.Finalize(len(s.items), s.now())
	return out
}
