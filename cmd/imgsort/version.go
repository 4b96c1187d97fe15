package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

// version 由构建时 -ldflags "-X main.version=..." 注入。
var version = "0.1.0"

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "显示版本号",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imgsort %s\n", version)
			if !check {
				return nil
			}

			res, err := latest.Check(&latest.GithubTag{
				Owner:      "John-Robertt",
				Repository: "imgsort",
			}, version)
			if err != nil {
				// 网络不可用等情况不视为失败。
				fmt.Fprintf(cmd.ErrOrStderr(), "检查更新失败：%v\n", err)
				return nil
			}
			if res.Outdated {
				fmt.Fprintf(out, "有新版本：%s（当前 %s）\n", res.Current, version)
			} else {
				fmt.Fprintln(out, "已是最新版本")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "联网检查是否有新版本")
	return cmd
}
