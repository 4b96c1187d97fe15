package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/imgsort/internal/config"
	"github.com/John-Robertt/imgsort/internal/infra/fsx"
)

func newConfigCmd(d deps, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "配置文件相关操作",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Short:       "写出默认配置文件（默认 ./imgsort.yaml；--config 指定其它路径）",
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := d.getwd()
			if err != nil {
				return err
			}
			path := defaultConfigPath(cwd, *configFile)
			dir, name := filepath.Split(path)

			data := []byte(config.DefaultFileYAML)
			if force {
				err = fsx.WriteFileAtomicReplace(d.fs, dir, name, data)
			} else {
				err = fsx.WriteFileAtomicNoOverwrite(d.fs, dir, name, data)
			}
			if err != nil {
				if errors.Is(err, os.ErrExist) || fsx.IsPathTypeConflict(err) {
					return &config.Error{Code: config.ErrCodeExists, Path: path, Err: err}
				}
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "已写入 %s\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的配置文件")

	cmd.AddCommand(initCmd)
	return cmd
}
