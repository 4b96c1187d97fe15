package main

import (
	"github.com/spf13/cobra"

	"github.com/John-Robertt/imgsort/internal/scan"
)

func newLsCmd(d deps, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "列出目录中的候选图片（与界面中的顺序一致）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eff, err := loadConfig(cmd, d, *configFile, args)
			if err != nil {
				return err
			}
			items, err := scan.ScanImages(d.fs, eff.Source, scan.DefaultExt)
			if err != nil {
				return err
			}
			return emitList(cmd.OutOrStdout(), d.stdoutIsTTY(), items)
		},
	}
}
