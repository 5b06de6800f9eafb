package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"attrpicker/internal/catalog"
	"attrpicker/internal/config"
	"attrpicker/internal/debug"
	"attrpicker/internal/telemetry"
	"attrpicker/internal/ui"
	"attrpicker/internal/ui/theme"
)

const openTimeout = 10 * time.Second

// seedAttributes fills an empty local catalog so the picker has something
// to show on first run.
var seedAttributes = []string{"Color", "Size", "Material", "Pattern", "Finish", "Weight"}

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	debugFlag := flag.Bool("debug", false, "Write a debug log")
	noColorFlag := flag.Bool("no-color", false, "Disable colors")
	jsonFlag := flag.Bool("json", false, "Print the saved attributes as JSON")
	dbPathFlag := flag.String("db-path", config.GetString(config.KeyDatabasePath), "Path to the local attribute catalog")
	storeURLFlag := flag.String("store-url", config.GetString(config.KeyStoreURL), "Base URL of a WooCommerce store to use as the catalog")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Help markdown style (rich, light, plain)")
	maxVisibleFlag := flag.Int("max-visible", config.GetInt(config.KeyPickerMaxVisible), "Rows shown before the list scrolls")
	fuzzyFlag := flag.Bool("fuzzy", config.GetBool(config.KeyPickerFuzzy), "Fall back to fuzzy matching")
	localFlag := flag.Bool("local", !config.GetBool(config.KeyPickerCreateGlobal), "Create new attributes on the product only")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	overrides := buildOverrides(runtimeFlags{
		dbPath:       dbPathFlag,
		storeURL:     storeURLFlag,
		outputFormat: outputFormatFlag,
		maxVisible:   maxVisibleFlag,
		fuzzy:        fuzzyFlag,
		local:        localFlag,
	}, visited)
	if err := config.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer debug.Close()

	if *noColorFlag {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	themes := theme.Active()
	themes.SetSaver(config.SaveTheme)
	if name := config.GetString(config.KeyTheme); name != "" {
		if err := themes.Use(name); err != nil {
			debug.Logf("%v, using %s", err, theme.DefaultName)
		}
	}

	if err := run(os.Stdout, *jsonFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, asJSON bool) error {
	ctx := context.Background()

	backend, err := openCatalog(ctx, catalogSettings{
		dbPath:         config.GetString(config.KeyDatabasePath),
		storeURL:       config.GetString(config.KeyStoreURL),
		consumerKey:    config.GetString(config.KeyStoreConsumerKey),
		consumerSecret: config.GetString(config.KeyStoreConsumerSecret),
	})
	if err != nil {
		return err
	}
	defer backend.close()

	emitter, closeHooks := buildEmitter(ctx, backend.sqlite)
	defer closeHooks()

	app := ui.NewApp(ui.Config{
		Client:       backend.client,
		Emitter:      emitter,
		Picker:       config.PickerSettings(),
		OutputFormat: config.GetString(config.KeyOutputFormat),
		Source:       backend.label,
		Version:      Version,
	})

	res, err := runProgram(app, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		return err
	}
	return printResult(w, res, asJSON)
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(app *ui.App, factory programFactory) (ui.Result, error) {
	if factory == nil {
		return ui.Result{}, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return ui.Result{}, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return ui.Result{}, fmt.Errorf("run UI: %w", err)
	}
	return app.Result(), nil
}

type runtimeFlags struct {
	dbPath       *string
	storeURL     *string
	outputFormat *string
	maxVisible   *int
	fuzzy        *bool
	local        *bool
}

// buildOverrides maps the flags the user actually passed onto config keys
// so they win over files and environment.
func buildOverrides(flags runtimeFlags, visited map[string]struct{}) map[string]any {
	overrides := map[string]any{}
	if flagWasExplicitlySet("db-path", visited) {
		overrides[config.KeyDatabasePath] = strings.TrimSpace(*flags.dbPath)
	}
	if flagWasExplicitlySet("store-url", visited) {
		overrides[config.KeyStoreURL] = strings.TrimSpace(*flags.storeURL)
	}
	if flagWasExplicitlySet("output-format", visited) {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(*flags.outputFormat)
	}
	if flagWasExplicitlySet("max-visible", visited) {
		overrides[config.KeyPickerMaxVisible] = *flags.maxVisible
	}
	if flagWasExplicitlySet("fuzzy", visited) {
		overrides[config.KeyPickerFuzzy] = *flags.fuzzy
	}
	if flagWasExplicitlySet("local", visited) {
		overrides[config.KeyPickerCreateGlobal] = !*flags.local
	}
	return overrides
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	_, ok := visited[name]
	return ok
}

type catalogSettings struct {
	dbPath         string
	storeURL       string
	consumerKey    string
	consumerSecret string
}

type catalogBackend struct {
	client catalog.Client
	sqlite *catalog.SQLiteClient
	label  string
	close  func()
}

// openCatalog picks the REST store when a URL is configured and the local
// SQLite catalog otherwise.
func openCatalog(ctx context.Context, s catalogSettings) (catalogBackend, error) {
	if url := strings.TrimSpace(s.storeURL); url != "" {
		client := catalog.NewRESTClient(url, s.consumerKey, s.consumerSecret)
		return catalogBackend{client: client, label: url, close: func() {}}, nil
	}

	path := strings.TrimSpace(s.dbPath)
	if path == "" {
		var err error
		if path, err = defaultDatabasePath(); err != nil {
			return catalogBackend{}, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return catalogBackend{}, fmt.Errorf("create catalog dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()
	client, err := catalog.OpenSQLite(ctx, path)
	if err != nil {
		return catalogBackend{}, err
	}
	if err := client.SeedIfEmpty(ctx, seedAttributes...); err != nil {
		_ = client.Close()
		return catalogBackend{}, err
	}
	return catalogBackend{
		client: client,
		sqlite: client,
		label:  filepath.Base(path),
		close:  func() { _ = client.Close() },
	}, nil
}

func defaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, ".attrpicker", "catalog.db"), nil
}

// buildEmitter wires the configured telemetry hooks. The returned func
// flushes and closes them.
func buildEmitter(ctx context.Context, local *catalog.SQLiteClient) (*telemetry.Emitter, func()) {
	if !config.GetBool(config.KeyTelemetryEnabled) {
		return nil, func() {}
	}

	hooks := telemetry.Hooks{}
	if debug.Enabled() {
		hooks = append(hooks, telemetry.DebugHook())
	}
	if local != nil {
		hook, err := telemetry.NewSQLiteHook(ctx, local.DB())
		if err != nil {
			debug.Logf("telemetry: sqlite hook disabled: %v", err)
		} else {
			hooks = append(hooks, hook)
		}
	}

	var kafkaHook *telemetry.KafkaHook
	if brokers := config.GetStringSlice(config.KeyTelemetryKafkaBroker); len(brokers) > 0 {
		kafkaHook = telemetry.NewKafkaHook(telemetry.NewKafkaWriter(brokers, config.GetString(config.KeyTelemetryKafkaTopic)))
		hooks = append(hooks, kafkaHook)
	}

	emitter := telemetry.NewEmitter(hooks, telemetry.Config{Enabled: true})
	return emitter, func() {
		if kafkaHook == nil {
			return
		}
		if err := kafkaHook.Close(); err != nil && !errors.Is(err, context.Canceled) {
			debug.Logf("telemetry: close kafka writer: %v", err)
		}
	}
}
