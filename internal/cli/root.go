package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cdoyle/lister-tui/internal/config"
	"github.com/cdoyle/lister-tui/internal/list"
	"github.com/cdoyle/lister-tui/internal/presenter"
	"github.com/cdoyle/lister-tui/internal/store"
	"github.com/cdoyle/lister-tui/internal/ui"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lister-tui [document]",
		Short: "Lister TUI - a terminal to-do list manager",
		Long: `Lister TUI manages to-do list documents from the terminal. Each document
is a colored, ordered list of items stored as JSON. Documents edited by
other processes are reloaded live, with changes replayed incrementally.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}

	cmd.PersistentFlags().String("documents-dir", "", "Directory holding list documents")
	cmd.Flags().String("color", "", "Color for a newly created document (gray, blue, green, yellow, orange, red)")

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newGlanceCommand())
	return cmd
}

// loadSetup resolves config and opens the document store.
func loadSetup(cmd *cobra.Command) (*config.Config, *store.FileStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("documents-dir"); dir != "" {
		cfg.DocumentsDir = dir
	}
	fs, err := store.NewFileStore(cfg.DocumentsDir)
	if err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

// runTUI starts the Bubble Tea application.
func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, fs, err := loadSetup(cmd)
	if err != nil {
		return err
	}

	name := cfg.DefaultDocument
	if len(args) > 0 {
		name = args[0]
	}

	coord := store.NewCoordinator(fs, name)
	defer coord.Close()

	if cache, cerr := store.NewBadgerStore(cfg.CacheDir); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: document cache disabled: %v\n", cerr)
	} else {
		defer cache.Close()
		coord.SetMirror(cache)
	}

	doc, err := coord.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		doc = list.New()
		if colorName, _ := cmd.Flags().GetString("color"); colorName != "" {
			c, perr := list.ParseColor(colorName)
			if perr != nil {
				return perr
			}
			doc.Color = c
		}
		if err := coord.Save(ctx, doc); err != nil {
			return fmt.Errorf("failed to create document %q: %w", name, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to load document %q: %w", name, err)
	}

	debounce := time.Duration(cfg.UI.WatchDebounceMs) * time.Millisecond
	if err := coord.Watch(ctx, fs.DocumentPath(name), debounce); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
	}

	pres := presenter.NewAllItemsPresenter(presenter.NewUndoStack())
	pres.Replace(doc)

	model := ui.NewModel(cfg, coord, pres)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// newListCommand prints the available document names.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fs, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			names, err := fs.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// loadCached reads a document from the badger cache.
func loadCached(ctx context.Context, cacheDir, name string) (*list.List, error) {
	cache, err := store.NewBadgerStore(cacheDir)
	if err != nil {
		return nil, store.ErrNotFound
	}
	defer cache.Close()
	return cache.Load(ctx, name)
}

// newGlanceCommand prints a one-shot incomplete-items snapshot.
func newGlanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "glance [document]",
		Short: "Show a document's outstanding items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fs, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			name := cfg.DefaultDocument
			if len(args) > 0 {
				name = args[0]
			}
			doc, err := fs.Load(cmd.Context(), name)
			if errors.Is(err, store.ErrNotFound) {
				// The document file may be gone (another machine, synced
				// dir offline); fall back to the cached copy.
				doc, err = loadCached(cmd.Context(), cfg.CacheDir, name)
			}
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("document %q not found", name)
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderGlance(name, doc, cfg.Theme))
			return nil
		},
	}
}
