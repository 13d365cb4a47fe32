package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"irradiance-map.klederson.com/internal/app"
	"irradiance-map.klederson.com/internal/config"
	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/export"
	"irradiance-map.klederson.com/internal/grid"
	"irradiance-map.klederson.com/internal/logging"
	"irradiance-map.klederson.com/internal/server"
	"irradiance-map.klederson.com/internal/ui"
)

var (
	flagConfig string
	flagFormat string
	flagOut    string
)

func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "irradiance-map",
		Short: "Irradiance Map - LED received power density explorer",
		Long: `Irradiance Map evaluates the received power density of an LED array over
distance and emission angle, and shows it as a heatmap, a polar beam view and
a density table in the terminal.

The model is density = N * I * f(angle) / (d^2 + 1e-5) / environment / windshield,
with the angular factor f taken from a preset or a custom profile.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(v)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default ./irradiance.yaml or the user config dir)")
	pf.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.String("log-file", "", "Write logs to this file (the TUI only logs to a file)")
	pf.String("type", config.DefaultType, "LED type: a preset name or \"custom\"")
	pf.Int("count", config.DefaultCount, "Number of LEDs")
	pf.Float64("intensity", 0, "Per-LED intensity in mW/sr (0 = preset default)")
	pf.Float64("env", config.DefaultEnvironmentInput, fmt.Sprintf("Environment attenuation factor (0 = %g)", config.DefaultEnvironment))
	pf.Float64("windshield", config.DefaultWindshieldInput, fmt.Sprintf("Windshield attenuation factor (0 = %g)", config.DefaultWindshield))

	bindFlags(v, pf.Lookup, map[string]string{
		"logLevel":                "log-level",
		"logFile":                 "log-file",
		"led.type":                "type",
		"led.count":               "count",
		"led.intensity":           "intensity",
		"attenuation.environment": "env",
		"attenuation.windshield":  "windshield",
	})

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Print the density table for the configured parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(v, cmd.OutOrStdout())
		},
	}
	tableCmd.Flags().StringVar(&flagFormat, "format", string(export.FormatText), "Output format: text, csv or json")
	tableCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Write to this file instead of stdout")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the density model over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(v)
		},
	}
	serveCmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	bindFlags(v, serveCmd.Flags().Lookup, map[string]string{"serve.addr": "addr"})

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the available LED types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(v, cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(tableCmd, serveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup loads configuration and resolves the initial parameters, rejecting
// invalid input before any view starts.
func setup(v *viper.Viper) (config.Settings, emitter.Catalog, emitter.Params, error) {
	settings, err := config.Load(v, flagConfig)
	if err != nil {
		return settings, emitter.Catalog{}, emitter.Params{}, err
	}

	cat, err := emitter.DefaultCatalog().WithSettings(settings.Presets)
	if err != nil {
		return settings, cat, emitter.Params{}, err
	}

	params := emitter.ParamsFromSettings(cat, settings)
	if err := params.Validate(cat); err != nil {
		return settings, cat, params, err
	}
	return settings, cat, params, nil
}

func runTUI(v *viper.Viper) error {
	settings, cat, params, err := setup(v)
	if err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(settings.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	model, err := app.New(cat, params, app.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info().Str("type", params.Type).Int("count", params.Count).Msg("starting")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

func runTable(v *viper.Viper, stdout io.Writer) error {
	settings, cat, params, err := setup(v)
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(settings.LogLevel)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	m, err := params.Model(cat)
	if err != nil {
		return err
	}
	report := export.Report{Type: params.Type, Profile: m.Profile.Points(), Grid: grid.ComputeDefault(m)}

	w := stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, format, report); err != nil {
		return err
	}
	if flagOut != "" {
		log.Info().Str("path", flagOut).Str("format", string(format)).Msg("table written")
	}
	return nil
}

func runServe(v *viper.Viper) error {
	settings, cat, params, err := setup(v)
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(settings.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := server.NewCollector(reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cat, params, log, metrics).ListenAndServe(ctx, settings.Serve.Addr)
}

func runPresets(v *viper.Viper, stdout io.Writer) error {
	_, cat, _, err := setup(v)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorBorderNorm)).
		Headers("TYPE", "LABEL", "INTENSITY mW/sr", "PROFILE")
	for _, p := range cat.Presets() {
		t.Row(p.Name, p.Label, ui.FormatDensity(p.Intensity), p.Profile.String())
	}
	t.Row(emitter.TypeCustom, "Custom profile", "-", "user-entered factors at "+fmt.Sprint(emitter.StandardAngles))

	_, err = fmt.Fprintln(stdout, t.Render())
	return err
}
