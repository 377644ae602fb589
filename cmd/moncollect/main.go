package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"moncollect/internal/collect"
	"moncollect/internal/config"
	"moncollect/internal/debug"
	"moncollect/internal/nodetree"
	"moncollect/internal/store"
	"moncollect/internal/ui"
	"moncollect/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// errNoNodes is returned when the form has no node to attach a collector to.
var errNoNodes = errors.New("no nodes defined; create one with -add-node <path>")

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := registerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if *flags.version {
		printVersion(os.Stdout)
		return
	}

	if err := run(computeRuntimeOptions(fs, flags), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runtimeFlags struct {
	version      *bool
	dbPath       *string
	debug        *bool
	theme        *string
	outputFormat *string
	edit         *int64
	nid          *int64
	list         *bool
	addNode      *string
	deleteID     *int64
	yes          *bool
}

func registerFlags(fs *flag.FlagSet) runtimeFlags {
	return runtimeFlags{
		version:      fs.Bool("version", false, "Print version information and exit"),
		dbPath:       fs.String("db-path", config.GetString(config.KeyDatabasePath), "Path to the collector database (default ~/.moncollect/collect.db)"),
		debug:        fs.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log to ~/.moncollect/debug.log"),
		theme:        fs.String("theme", config.GetString(config.KeyTheme), "Color theme ("+strings.Join(theme.Available(), ", ")+")"),
		outputFormat: fs.String("output-format", config.GetString(config.KeyOutputFormat), "Summary markdown style (rich, light, plain)"),
		edit:         fs.Int64("edit", 0, "Edit the collector with this id"),
		nid:          fs.Int64("nid", 0, "Preselect the node with this id"),
		list:         fs.Bool("list", false, "Print stored collectors as JSON and exit"),
		addNode:      fs.String("add-node", "", "Create a dot-separated node path and exit"),
		deleteID:     fs.Int64("delete", 0, "Delete the collector with this id and exit"),
		yes:          fs.Bool("yes", false, "Skip the -delete confirmation"),
	}
}

type runtimeOptions struct {
	dbPath       string
	debug        bool
	logLevel     string
	theme        string
	outputFormat string
	editID       int64
	nid          int64
	list         bool
	addNode      string
	deleteID     int64
	assumeYes    bool
	steps        []int
	stepWarning  string
	defaults     collect.InitialValues
}

// computeRuntimeOptions resolves every setting, letting explicitly set flags
// beat the config layers.
func computeRuntimeOptions(fs *flag.FlagSet, flags runtimeFlags) runtimeOptions {
	visited := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	dbPath := strings.TrimSpace(config.GetString(config.KeyDatabasePath))
	if flagWasExplicitlySet(fs, "db-path", visited) {
		dbPath = strings.TrimSpace(*flags.dbPath)
	}

	debugEnabled := config.GetBool(config.KeyDebug)
	if flagWasExplicitlySet(fs, "debug", visited) {
		debugEnabled = *flags.debug
	}

	themeName := strings.TrimSpace(config.GetString(config.KeyTheme))
	if flagWasExplicitlySet(fs, "theme", visited) {
		themeName = strings.TrimSpace(*flags.theme)
	}

	outputFormat := strings.TrimSpace(config.GetString(config.KeyOutputFormat))
	if flagWasExplicitlySet(fs, "output-format", visited) {
		outputFormat = strings.TrimSpace(*flags.outputFormat)
	}

	steps := config.CollectSteps()
	defaultStep, stepWarning := resolveDefaultStep(steps, config.GetInt(config.KeyCollectDefaultStep))

	return runtimeOptions{
		dbPath:       dbPath,
		debug:        debugEnabled,
		logLevel:     config.GetString(config.KeyLogLevel),
		theme:        themeName,
		outputFormat: outputFormat,
		editID:       *flags.edit,
		nid:          *flags.nid,
		list:         *flags.list,
		addNode:      strings.TrimSpace(*flags.addNode),
		deleteID:     *flags.deleteID,
		assumeYes:    *flags.yes,
		steps:        steps,
		stepWarning:  stepWarning,
		defaults: collect.WithDefaults(
			config.GetInt(config.KeyCollectDefaultTimeout),
			defaultStep,
		),
	}
}

// resolveDefaultStep keeps the configured default step when it is one of
// the step options. Otherwise it falls back to the built-in default, or the
// first option when that is not listed either, and returns a warning.
func resolveDefaultStep(steps []int, step int) (int, string) {
	if step <= 0 || slices.Contains(steps, step) {
		return step, ""
	}
	fallback := config.DefaultCollectStep
	if !slices.Contains(steps, fallback) && len(steps) > 0 {
		fallback = steps[0]
	}
	return fallback, fmt.Sprintf("%s %d is not in %s %v, using %d",
		config.KeyCollectDefaultStep, step, config.KeyCollectSteps, steps, fallback)
}

func flagWasExplicitlySet(fs *flag.FlagSet, name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}

func run(opts runtimeOptions, out io.Writer) error {
	if err := debug.Init(debug.Options{Enabled: opts.debug, Level: opts.logLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()
	log := debug.WithComponent("main")
	if debug.Enabled() {
		if logPath, err := debug.GetLogPath(); err == nil {
			debug.Logf("moncollect %s logging to %s", Version, logPath)
		}
	}

	if opts.stepWarning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", opts.stepWarning)
		log.Warn().Msg(opts.stepWarning)
	}

	if opts.theme != "" && !theme.Set(opts.theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", opts.theme, theme.CurrentName())
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		p, err := config.DefaultDatabasePath()
		if err != nil {
			return err
		}
		dbPath = p
	}

	ctx := context.Background()
	st, err := store.Open(ctx, dbPath, store.WithLogger(debug.WithComponent("store")))
	if err != nil {
		return err
	}
	defer st.Close()
	log.Debug().Str("db", dbPath).Msg("store opened")

	switch {
	case opts.addNode != "":
		return runAddNode(ctx, st, opts.addNode, out)
	case opts.list:
		return runList(ctx, st, out)
	case opts.deleteID > 0:
		return runDelete(ctx, st, opts.deleteID, opts.assumeYes, out)
	}

	cfg, err := loadAppConfig(ctx, st, opts, out)
	if err != nil {
		return err
	}
	if cfg.Initial != nil && cfg.Initial.Tags != nil {
		if dropped := droppedTags(*cfg.Initial.Tags); len(dropped) > 0 {
			log.Warn().Strs("tags", dropped).Int64("id", opts.editID).Msg("saving drops non-service tags")
			fmt.Fprintf(os.Stderr, "Note: saving replaces tags %s with the service tag\n", strings.Join(dropped, ", "))
		}
	}
	app, err := runProgram(cfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		return err
	}
	if id := app.SavedID(); id > 0 {
		fmt.Fprintf(out, "Saved port collector #%d\n", id)
	}
	return nil
}

func runAddNode(ctx context.Context, st *store.Store, path string, out io.Writer) error {
	id, err := st.EnsurePath(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "node %s id=%d\n", path, id)
	return nil
}

func runList(ctx context.Context, st *store.Store, out io.Writer) error {
	collectors, err := st.ListCollectors(ctx)
	if err != nil {
		return err
	}
	if collectors == nil {
		collectors = []store.Collector{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(collectors)
}

// runDelete removes a collector after confirmation. Without a terminal the
// deletion needs -yes.
func runDelete(ctx context.Context, st *store.Store, id int64, assumeYes bool, out io.Writer) error {
	existing, err := st.GetCollector(ctx, id)
	if err != nil {
		return err
	}
	if !assumeYes {
		if !isInteractive() {
			return fmt.Errorf("refusing to delete collector #%d without -yes", id)
		}
		if !confirmDelete(id, existing.Name) {
			fmt.Fprintln(out, "Kept port collector")
			return nil
		}
	}
	if err := st.DeleteCollector(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted port collector #%d\n", id)
	return nil
}

// loadAppConfig is buildAppConfig that, on an interactive terminal, offers
// to create the first node when none exist.
func loadAppConfig(ctx context.Context, st *store.Store, opts runtimeOptions, out io.Writer) (ui.Config, error) {
	cfg, err := buildAppConfig(ctx, st, opts)
	if !errors.Is(err, errNoNodes) || !isInteractive() {
		return cfg, err
	}
	path, err := askNodePath()
	if err != nil {
		return ui.Config{}, err
	}
	if err := runAddNode(ctx, st, path, out); err != nil {
		return ui.Config{}, err
	}
	return buildAppConfig(ctx, st, opts)
}

// buildAppConfig loads the node tree and, for -edit, the collector being
// edited. -nid preselects a node in both modes.
func buildAppConfig(ctx context.Context, st *store.Store, opts runtimeOptions) (ui.Config, error) {
	nodes, err := st.ListNodes(ctx)
	if err != nil {
		return ui.Config{}, err
	}
	roots, err := nodetree.NewBuilder().Build(nodes)
	if err != nil {
		return ui.Config{}, err
	}
	options := nodetree.Flatten(roots)
	if len(options) == 0 {
		return ui.Config{}, errNoNodes
	}

	var initial *collect.InitialValues
	if opts.editID > 0 {
		existing, err := st.GetCollector(ctx, opts.editID)
		if err != nil {
			return ui.Config{}, err
		}
		initial = existing.InitialValues()
	}
	if opts.nid > 0 {
		if nodetree.Find(roots, opts.nid) == nil {
			return ui.Config{}, fmt.Errorf("node %d: %w", opts.nid, store.ErrNotFound)
		}
		if initial == nil {
			initial = &collect.InitialValues{}
		}
		initial.NID = collect.Ptr(opts.nid)
	}

	return ui.Config{
		Nodes:        options,
		Initial:      initial,
		EditID:       opts.editID,
		Store:        st,
		Steps:        opts.steps,
		Defaults:     opts.defaults,
		OutputFormat: opts.outputFormat,
		Logger:       debug.WithComponent("ui"),
		Version:      Version,
	}, nil
}

// droppedTags lists the keys of tags a save will not keep. Only the
// service tag survives an edit.
func droppedTags(tags string) []string {
	var keys []string
	for _, tag := range collect.ParseTags(tags) {
		if tag.Key != "service" {
			keys = append(keys, tag.Key)
		}
	}
	return keys
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (*ui.App, error) {
	app, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	return app, nil
}
