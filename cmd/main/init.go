package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"benchmark-observer/src/config"

	"github.com/spf13/cobra"
)

func newInitCmd(cfgPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgPath

			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintln(cmd.OutOrStdout(), "exists", path)
				return nil
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "created", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
