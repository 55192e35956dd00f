// Package cli holds the plumbing shared by every cobra command: flag and
// config resolution, registry construction, signal handling and report
// rendering.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/estudosdevops/argo-manager/internal/manager"
	"github.com/estudosdevops/argo-manager/internal/registry"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Options builds manager options from the command's persistent flags,
// falling back to the configuration file for flags the user did not set.
func Options(cmd *cobra.Command) manager.Options {
	opts := manager.Options{
		Selector:    stringSetting(cmd, "cluster", registry.SelectorAll),
		Concurrency: intSetting(cmd, "concurrency", 0),
		Binary:      stringSetting(cmd, "argocd-path", ""),
	}

	opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
	if !cmd.Flags().Changed("timeout") && viper.IsSet("timeout") {
		opts.Timeout = viper.GetDuration("timeout")
	}

	return opts
}

// Registry builds the cluster registry from the --argocd-config flag (or
// config file), with per-cluster overrides from the "clusters" section.
func Registry(cmd *cobra.Command) *registry.Registry {
	path := stringSetting(cmd, "argocd-config", "")

	overrides := make(map[string]registry.Override)
	for name := range viper.GetStringMap("clusters") {
		overrides[name] = registry.Override{
			Namespace: viper.GetString(fmt.Sprintf("clusters.%s.namespace", name)),
			Project:   viper.GetString(fmt.Sprintf("clusters.%s.project", name)),
		}
	}

	return registry.New(path, overrides)
}

// NewManager builds a manager from the command's flags and config.
func NewManager(cmd *cobra.Command) *manager.Manager {
	return manager.New(Registry(cmd), Options(cmd))
}

// NewManagerWithTimeout is NewManager with a different default timeout, for
// commands whose underlying operation routinely outlives the generic one.
// An explicit --timeout or config value still wins.
func NewManagerWithTimeout(cmd *cobra.Command, def time.Duration) *manager.Manager {
	opts := Options(cmd)
	if !cmd.Flags().Changed("timeout") && !viper.IsSet("timeout") {
		opts.Timeout = def
	}
	return manager.New(Registry(cmd), opts)
}

// OutputFormat returns the validated --output value.
func OutputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case OutputTable, OutputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format %q (want %s or %s)", format, OutputTable, OutputJSON)
	}
}

// SignalContext derives a context from the command that is cancelled on
// SIGINT/SIGTERM, so an interrupt propagates to every in-flight worker
// process instead of leaving orphans.
func SignalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// RenderReport writes a report in the selected format. withStdout controls
// whether succeeded clusters' captured stdout is echoed after the table.
func RenderReport(cmd *cobra.Command, rep *report.Report, withStdout bool) error {
	format, err := OutputFormat(cmd)
	if err != nil {
		return err
	}

	if format == OutputJSON {
		return rep.WriteJSON(os.Stdout)
	}

	rep.WriteTable(os.Stdout)
	rep.WriteOutputs(os.Stdout, withStdout)
	return nil
}

// Confirm asks a yes/no question on the terminal. Anything that is not an
// explicit yes keeps the default.
func Confirm(prompt string, def bool) bool {
	choices := "y/N"
	if def {
		choices = "Y/n"
	}
	fmt.Printf("%s [%s]: ", prompt, choices)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

func stringSetting(cmd *cobra.Command, name, fallback string) string {
	value, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		value = viper.GetString(name)
	}
	if value == "" {
		value = fallback
	}
	return value
}

func intSetting(cmd *cobra.Command, name string, fallback int) int {
	value, _ := cmd.Flags().GetInt(name)
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		value = viper.GetInt(name)
	}
	if value == 0 {
		value = fallback
	}
	return value
}
