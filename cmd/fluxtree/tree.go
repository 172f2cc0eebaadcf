package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renato0307/fluxtree/internal/app"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/views"
)

func newTreeCmd(flags *globalFlags) *cobra.Command {
	var (
		only  []string
		depth int
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the trees once and exit",
		Long: `tree syncs the kubeconfig once, loads each view down to --depth levels
and prints it with box-drawing guides. Use --view to pick views
(clusters, sources, workloads, docs).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			defer logging.Shutdown()

			rt := app.NewRuntime(cfg, newRunner(cfg))
			return printTrees(cmd.Context(), cmd.OutOrStdout(), rt, only, depth)
		},
	}
	cmd.Flags().StringSliceVar(&only, "view", nil, "Views to print (default: all)")
	cmd.Flags().IntVar(&depth, "depth", 3, "Levels to load below the roots")
	return cmd
}

func printTrees(ctx context.Context, w io.Writer, rt *app.Runtime, only []string, depth int) error {
	selected, err := selectViews(rt.Context.Dispatcher.Providers(), only)
	if err != nil {
		return err
	}

	if err := rt.Context.Config.Sync(ctx, false); err != nil {
		return fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	for i, p := range selected {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.Title())

		roots, err := p.Roots(ctx)
		if err != nil {
			fmt.Fprintf(w, "  failed to load: %v\n", err)
			continue
		}
		views.LoadAll(ctx, p, roots, depth, rt.Context.WithIcons)
		if err := views.RenderText(w, roots, rt.Context.WithIcons); err != nil {
			return err
		}
	}
	return nil
}

func selectViews(all []views.Provider, only []string) ([]views.Provider, error) {
	if len(only) == 0 {
		return all, nil
	}
	byID := make(map[string]views.Provider, len(all))
	ids := make([]string, 0, len(all))
	for _, p := range all {
		byID[string(p.ID())] = p
		ids = append(ids, string(p.ID()))
	}

	out := make([]views.Provider, 0, len(only))
	for _, id := range only {
		p, ok := byID[strings.ToLower(id)]
		if !ok {
			return nil, fmt.Errorf("unknown view %q (available: %s)", id, strings.Join(ids, ", "))
		}
		out = append(out, p)
	}
	return out, nil
}
