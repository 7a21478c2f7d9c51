// Package main provides the CLI entrypoint for grademate.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Tobby-01/Grademate/internal/config"
	"github.com/Tobby-01/Grademate/internal/csvio"
	"github.com/Tobby-01/Grademate/internal/model"
	"github.com/Tobby-01/Grademate/internal/report"
	"github.com/Tobby-01/Grademate/internal/storage"
	"github.com/Tobby-01/Grademate/internal/tui"
)

const (
	defaultTheme    = string(model.ThemeGolden)
	defaultSemester = string(model.SemesterHarmattan)
	fallbackWidth   = 80
)

var (
	appTheme    string
	appRemember bool
	appSemester string
	appDBPath   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "grademate",
		Short:         "GPA and CGPA calculator for the harmattan and rain semesters",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runEditorCmd,
	}

	rootCmd.PersistentFlags().StringVar(&appTheme, "theme", defaultTheme, "color theme (golden, purple, combined)")
	rootCmd.PersistentFlags().BoolVar(&appRemember, "remember", true, "keep data across sessions")
	rootCmd.PersistentFlags().StringVar(&appSemester, "semester", defaultSemester, "initial semester tab (harmattan, rain)")
	rootCmd.PersistentFlags().StringVar(&appDBPath, "db", "", "path to the SQLite database")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	manager, closeStore, err := openManager(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	payload, ok, err := manager.Load(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		payload = storage.DefaultPayload()
		applyFlagPreferences(&payload)
	}

	program := tea.NewProgram(tui.NewModel(payload, manager), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyFlagPreferences seeds a fresh payload from flags and config file
// values. Saved payloads win over both.
func applyFlagPreferences(payload *storage.Payload) {
	switch model.Theme(appTheme) {
	case model.ThemeGolden, model.ThemePurple, model.ThemeCombined:
		payload.Prefs.Theme = model.Theme(appTheme)
	}
	payload.Prefs.RememberData = appRemember
	if model.Semester(strings.ToLower(appSemester)) == model.SemesterRain {
		payload.Current = model.SemesterRain
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the GPA/CGPA report",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	manager, closeStore, err := openManager(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	payload, ok, err := manager.Load(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		payload = storage.DefaultPayload()
	}
	return report.Render(cmd.OutOrStdout(), payload.Set, terminalWidth())
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the course records to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	manager, closeStore, err := openManager(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	payload, ok, err := manager.Load(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		payload = storage.DefaultPayload()
	}

	path := csvio.ExportFilename
	if len(args) == 1 {
		path = args[0]
	}
	if err := os.WriteFile(path, []byte(csvio.Encode(payload.Set)), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the course records with a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	set, err := csvio.Decode(string(data))
	if err != nil {
		var fe *csvio.FormatError
		if errors.As(err, &fe) {
			// Import aborted; previously saved data stays untouched.
			return fmt.Errorf("cannot import %s: %s", args[0], fe.Reason)
		}
		return err
	}

	manager, closeStore, err := openManager(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	payload, ok, err := manager.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		payload = storage.DefaultPayload()
		applyFlagPreferences(&payload)
	}
	// Import is a full overwrite, never a merge.
	payload.Set = set
	if err := manager.Save(ctx, payload); err != nil {
		return err
	}
	logErrf("Imported %s\n", args[0])
	return nil
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all saved records and preferences",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	manager, closeStore, err := openManager(cmd)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := manager.Clear(context.Background()); err != nil {
		return err
	}
	logErrln("Cleared saved data")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openManager builds the payload manager over the durable SQLite store and
// the in-process ephemeral store, applying config file values that flags did
// not override.
func openManager(cmd *cobra.Command) (*storage.Manager, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "theme", &appTheme, fileCfg.App.Theme)
	applyBoolConfig(cmd, "remember", &appRemember, fileCfg.App.Remember)
	applyStringConfig(cmd, "semester", &appSemester, fileCfg.App.Semester)
	applyStringConfig(cmd, "db", &appDBPath, fileCfg.App.DBPath)

	dbPath := appDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	durable, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeStore := func() {
		if cerr := durable.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return storage.NewManager(durable, storage.NewMemStore()), closeStore, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# grademate configuration
# Uncomment a value to enable it. CLI flags override config values.

[app]
# theme = %q          # Color theme (golden, purple, combined)
# remember = true     # Keep data across sessions
# semester = %q       # Initial semester tab (harmattan, rain)
# db-path = ""        # Path to the SQLite database
`,
		defaultTheme,
		defaultSemester,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
