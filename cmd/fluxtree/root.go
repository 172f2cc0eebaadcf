package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renato0307/fluxtree/internal/app"
	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/config"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/ui"
)

// newRunner builds the kubectl/flux executor. Tests replace it.
var newRunner = func(cfg config.Config) cli.Runner {
	return cli.NewExecRunner(cfg.CLITimeout)
}

// globalFlags are shared by every command and override the config file
type globalFlags struct {
	configPath   string
	theme        string
	kubeconfig   string
	kubectlPath  string
	fluxPath     string
	pollInterval time.Duration
	noIcons      bool
	logFile      string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "fluxtree",
		Short: "Browse the Flux GitOps objects of your clusters as trees",
		Long: `fluxtree shows the clusters of your kubeconfig, the Flux sources and
the Flux workloads (Kustomizations and HelmReleases) as navigable trees,
with readiness rolled up from the leaves. Reconcile, suspend and resume
are one keystroke away.

Configuration is read from ~/.config/fluxtree/config.yaml when present.
Flags take precedence over the file.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}
	cmd.SetVersionTemplate(`{{printf "fluxtree version %s\n" .Version}}`)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to the config file (default: ~/.config/fluxtree/config.yaml)")
	pf.StringVar(&flags.theme, "theme", "", fmt.Sprintf("Theme to use %v", ui.AvailableThemes()))
	pf.StringVar(&flags.kubeconfig, "kubeconfig", "", "Path to kubeconfig file (default: kubectl's own resolution)")
	pf.StringVar(&flags.kubectlPath, "kubectl", "", "kubectl binary to run")
	pf.StringVar(&flags.fluxPath, "flux", "", "flux binary to run")
	pf.DurationVar(&flags.pollInterval, "poll-interval", 0, "How often the kubeconfig is re-read")
	pf.BoolVar(&flags.noIcons, "no-icons", false, "Hide the status glyphs")
	pf.StringVar(&flags.logFile, "log-file", "", `Write logs to this file ("-" for stderr)`)
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newWatchCmd(flags),
		newTreeCmd(flags),
		newCheckCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig layers defaults, the config file and the flags that were set
func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("theme") {
		cfg.Theme = flags.theme
	}
	if changed("kubeconfig") {
		cfg.Kubeconfig = flags.kubeconfig
	}
	if changed("kubectl") {
		cfg.KubectlPath = flags.kubectlPath
	}
	if changed("flux") {
		cfg.FluxPath = flags.fluxPath
	}
	if changed("poll-interval") {
		cfg.PollInterval = flags.pollInterval
	}
	if changed("no-icons") {
		icons := !flags.noIcons
		cfg.Icons = &icons
	}
	if changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	if err := logging.Init(cfg.Logging()); err != nil {
		return cfg, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}

func runTUI(cfg config.Config) error {
	defer logging.Shutdown()
	logging.Info("starting fluxtree", "version", version, "theme", cfg.Theme)

	rt := app.NewRuntime(cfg, newRunner(cfg))
	p := tea.NewProgram(app.NewModel(rt.Context), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
