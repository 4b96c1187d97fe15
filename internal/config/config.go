package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/John-Robertt/imgsort/internal/domain"
)

const (
	// ErrCodeNotFound 表示 --config 显式指定的文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeExists 表示 config init 时目标文件已存在（且未指定 --force）。
	ErrCodeExists = "config_exists"
)

const (
	// FileBase 是自动发现的配置文件名（不含扩展名）。
	FileBase = "imgsort"
	// FileName 是 config init 写出的文件名。
	FileName = FileBase + ".yaml"
	// EnvPrefix 是环境变量前缀，例如 IMGSORT_DEST_UP。
	EnvPrefix = "IMGSORT"
)

// 配置键（viper 路径）。
const (
	KeySource   = "source"
	KeyDestUp   = "dest_up"
	KeyDestDown = "dest_down"
	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"
	KeyPreview  = "preview"
)

const DefaultLogLevel = "info"

// DefaultFileYAML 是 config init 写出的模板。
const DefaultFileYAML = `# imgsort 配置文件
# 优先级：命令行参数 > 环境变量（IMGSORT_*）> 本文件 > 内置默认值

# 源目录（留空则使用当前目录）
source: ""

# 两个目标目录（留空表示未配置，对应的移动操作被禁用）
dest_up: ""
dest_down: ""

# 是否在终端里渲染图片预览
preview: true

log:
  # debug | info | warn | error
  level: info
  # 日志文件；留空则不记录（TUI 占用终端，不会输出到屏幕）
  file: ""
`

// EffectiveConfig 是合并并做最小规范化后的最终配置（路径均为 clean + absolute）。
type EffectiveConfig struct {
	// ConfigFile 是实际读取的配置文件；未找到时为空。
	ConfigFile string

	Source string
	Dest   [domain.SlotCount]string

	LogLevel string
	LogFile  string
	Preview  bool
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeExists:
		return fmt.Sprintf("%s：配置文件 %q 已存在（使用 --force 覆盖）", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// New 创建带默认值与环境变量映射的 viper 实例。
func New(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetDefault(KeySource, "")
	v.SetDefault(KeyDestUp, "")
	v.SetDefault(KeyDestDown, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyPreview, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags 把命令行参数绑定到配置键；只有显式指定的参数才会覆盖配置文件。
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	pairs := map[string]string{
		KeyDestUp:   "up",
		KeyDestDown: "down",
		KeyLogLevel: "log-level",
		KeyLogFile:  "log-file",
		KeyPreview:  "preview",
	}
	for key, name := range pairs {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// LoadEffective 发现并读取配置文件，然后合并为最终配置。
//
// 发现规则（固定）：
// 1) configFile 非空：必须存在且可解析
// 2) 否则依次查找 <cwd>/imgsort.yaml、<UserConfigDir>/imgsort/imgsort.yaml（均可选）
//
// 覆盖优先级：v.Set > 命令行参数 > 环境变量 > 配置文件 > 默认值（由 viper 保证）。
// source 为空时默认使用 cwd。
func LoadEffective(cwd, configFile string, v *viper.Viper) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	used, err := readConfig(cwdAbs, configFile, v)
	if err != nil {
		return EffectiveConfig{}, err
	}

	// 相对路径一律相对 cwd（与命令行参数一致）。
	base := cwdAbs
	eff := EffectiveConfig{
		ConfigFile: used,
		Source:     absCleanFrom(base, v.GetString(KeySource)),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:    absCleanFrom(base, v.GetString(KeyLogFile)),
		Preview:    v.GetBool(KeyPreview),
	}
	eff.Dest[domain.SlotUp] = absCleanFrom(base, v.GetString(KeyDestUp))
	eff.Dest[domain.SlotDown] = absCleanFrom(base, v.GetString(KeyDestDown))
	if eff.Source == "" {
		eff.Source = cwdAbs
	}

	if err := validateLogLevel(eff.LogLevel); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: used, Err: err}
	}
	return eff, nil
}

func readConfig(cwdAbs, configFile string, v *viper.Viper) (string, error) {
	if strings.TrimSpace(configFile) != "" {
		path := absCleanFrom(cwdAbs, configFile)
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", &Error{Code: ErrCodeNotFound, Path: path, Err: err}
			}
			return "", &Error{Code: ErrCodeInvalid, Path: path, Err: err}
		}
		return path, nil
	}

	v.SetConfigName(FileBase)
	v.SetConfigType("yaml")
	v.AddConfigPath(cwdAbs)
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, FileBase))
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return "", nil
		}
		return "", &Error{Code: ErrCodeInvalid, Path: v.ConfigFileUsed(), Err: err}
	}
	return v.ConfigFileUsed(), nil
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level 只能是 debug|info|warn|error，实际是 %q", level)
	}
}

// NormalizePath 按与配置文件相同的规则规范化用户输入的路径（界面里编辑的目录也走这里）。
func NormalizePath(cwd, p string) string {
	return absCleanFrom(cwd, p)
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 为空或全空白：返回空（表示“未配置”）；否则按原样保留首尾空格
// - p 以 ~/ 开头：展开为用户主目录
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	p = expandTilde(p)
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

func expandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
