package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/imgsort/internal/infra/fsx"
)

func newMvCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <file> <destdir>",
		Short: "把单个文件移动到目标目录（同名时自动改名，不覆盖）",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := fsx.NewMover(d.fs).Move(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dst)
			return err
		},
	}
}
