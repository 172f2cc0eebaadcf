package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/renato0307/fluxtree/internal/cli"
)

var errMissingTools = errors.New("required tools are missing or too old")

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that kubectl and flux are installed and recent enough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			runner := newRunner(cfg)
			statuses := []cli.ToolStatus{
				cli.CheckKubectl(cmd.Context(), runner, cfg.KubectlPath),
				cli.CheckFlux(cmd.Context(), runner, cfg.FluxPath),
			}
			return reportTools(cmd.OutOrStdout(), statuses)
		},
	}
}

func reportTools(w io.Writer, statuses []cli.ToolStatus) error {
	failed := false
	for _, s := range statuses {
		switch {
		case s.OK:
			fmt.Fprintf(w, "✔ %s %s (>= %s)\n", s.Name, s.Version, s.Minimum)
		case !s.Installed:
			failed = true
			fmt.Fprintf(w, "✗ %s not usable: %v\n", s.Name, s.Err)
		default:
			failed = true
			fmt.Fprintf(w, "✗ %s: %v\n", s.Name, s.Err)
		}
	}
	if failed {
		return errMissingTools
	}
	return nil
}
