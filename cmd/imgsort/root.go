package main

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/imgsort/internal/browse"
	"github.com/John-Robertt/imgsort/internal/config"
	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/logger"
	"github.com/John-Robertt/imgsort/internal/tui"
)

// deps 汇集命令依赖的外部环境，测试里替换。
type deps struct {
	fs          afero.Fs
	getwd       func() (string, error)
	stdoutIsTTY func() bool
	// runTUI 运行界面并在退出后返回；测试里替换为直接返回。
	runTUI func(m *tui.Model) error
}

func appDeps() deps {
	return deps{
		fs:    afero.NewOsFs(),
		getwd: os.Getwd,
		stdoutIsTTY: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		runTUI: func(m *tui.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func newRootCmd(d deps) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "imgsort [source]",
		Short: "逐张浏览目录中的图片，并一键移动到两个目标目录之一",
		Long: `imgsort 是一个图片分拣工具：

- 扫描源目录中（不递归）的 .png 图片
- 逐张浏览（左右切换，循环）
- 一键把当前图片移动到“上/下”两个目标目录之一
- 目标已有同名文件时自动改名（photo.png → photo_.png），绝不覆盖
- 跨文件系统时退化为复制 + 删除
- 列表过期（文件被外部删除/移动）时自动重新扫描`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(cmd, d, configFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			eff, err := loadConfig(cmd, d, configFile, args)
			if err != nil {
				return err
			}
			cwd, err := d.getwd()
			if err != nil {
				return err
			}
			log := logger.Get()
			log.Info().Str("source", eff.Source).Str("config", eff.ConfigFile).Msg("启动")

			st := browse.New(d.fs)
			_ = st.SetDestination(domain.SlotUp, eff.Dest[domain.SlotUp])
			_ = st.SetDestination(domain.SlotDown, eff.Dest[domain.SlotDown])
			// 启动扫描失败不致命：界面里可以改源目录。
			startErr := st.SetSourceDirectory(eff.Source)

			m := tui.New(d.fs, st, tui.Options{
				Preview: eff.Preview,
				Dark:    lipgloss.HasDarkBackground(),
				Cwd:     cwd,
			})
			m.ShowError(startErr)
			if err := d.runTUI(m); err != nil {
				return err
			}

			stats := m.Stats()
			log.Info().Int("moved_up", stats.MovedUp).Int("moved_down", stats.MovedDown).
				Int("rescans", stats.Rescans).Int("failed", stats.Failed).Msg("退出")
			return emitSummary(cmd.OutOrStdout(), cmd.ErrOrStderr(), d.stdoutIsTTY(), stats)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "配置文件路径（默认查找 ./imgsort.yaml 与用户配置目录）")
	pf.String("log-level", config.DefaultLogLevel, "日志级别：debug|info|warn|error")
	pf.String("log-file", "", "日志文件（留空则不记录）")

	f := root.Flags()
	f.String("up", "", "上槽目标目录")
	f.String("down", "", "下槽目标目录")
	f.Bool("preview", true, "在终端渲染图片预览")
	f.Bool("no-preview", false, "关闭图片预览")

	root.AddCommand(
		newLsCmd(d, &configFile),
		newMvCmd(d),
		newConfigCmd(d, &configFile),
		newVersionCmd(),
	)
	return root
}

// loadConfig 合并配置文件、环境变量与命令行参数；args[0]（若有）覆盖 source。
func loadConfig(cmd *cobra.Command, d deps, configFile string, args []string) (config.EffectiveConfig, error) {
	cwd, err := d.getwd()
	if err != nil {
		return config.EffectiveConfig{}, err
	}

	v := config.New(d.fs)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.EffectiveConfig{}, err
	}
	if len(args) > 0 {
		v.Set(config.KeySource, args[0])
	}
	if f := cmd.Flags().Lookup("no-preview"); f != nil && f.Changed && f.Value.String() == "true" {
		v.Set(config.KeyPreview, false)
	}
	return config.LoadEffective(cwd, configFile, v)
}

// annotationConfigOptional 标记不依赖配置文件的子命令：配置无效时仍可运行（例如用 config init --force 修复）。
const annotationConfigOptional = "imgsort/config-optional"

// initLogger 按合并后的配置初始化日志；所有子命令共用 --log-level/--log-file。
func initLogger(cmd *cobra.Command, d deps, configFile string) error {
	eff, err := loadConfig(cmd, d, configFile, nil)
	if err == nil {
		return logger.Init(eff.LogLevel, eff.LogFile)
	}
	if cmd.Annotations[annotationConfigOptional] == "" {
		return err
	}

	cwd, werr := d.getwd()
	if werr != nil {
		return werr
	}
	level, _ := cmd.Flags().GetString("log-level")
	file, _ := cmd.Flags().GetString("log-file")
	return logger.Init(level, config.NormalizePath(cwd, file))
}

// defaultConfigPath 是 config init 的默认写入位置。
func defaultConfigPath(cwd, configFile string) string {
	if configFile != "" {
		if filepath.IsAbs(configFile) {
			return filepath.Clean(configFile)
		}
		return filepath.Join(cwd, configFile)
	}
	return filepath.Join(cwd, config.FileName)
}
