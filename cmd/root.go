package cmd

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
	"strings"
	"vincit.fi/photo-triage/backend"
	"vincit.fi/photo-triage/common"
	"vincit.fi/photo-triage/common/constants"
	"vincit.fi/photo-triage/common/logger"
	"vincit.fi/photo-triage/ui/tui"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "photo-triage [dir]",
		Short: "Sort a photo library into keep, pending and delete",
		Long: strings.TrimSpace(`
Walk through the photos of a directory one at a time and decide whether
to keep them, delete them or look at them later. Decisions are stored in
the .photo-triage directory of the library and survive restarts.
`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTui,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default <dir>/.photo-triage/config.toml)")
	flags.String("log-level", "", "Log level: error, warn, info, debug or trace")
	flags.String("trash-dir", "", "Directory deleted files are moved to")
	flags.Bool("permanent-delete", false, "Remove files instead of moving them to the trash directory")
	flags.Bool("include-videos", true, "List videos as triage candidates")
	flags.Bool("in-memory", false, "Do not store the catalog or decisions on disk")

	root.AddCommand(
		newStatusCmd(),
		newAlbumsCmd(),
		newListCmd("pending", "List items waiting for a decision", pendingItems),
		newListCmd("deleted", "List items marked for deletion", deletedItems),
		newPurgeCmd(),
		newResetCmd(),
	)
	return root
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootDirFromArgs(args []string) (string, error) {
	dir := "."
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir = args[0]
	}
	return filepath.Abs(dir)
}

// loadParams reads the config file of the library and applies the flags
// the user actually set on top of it.
func loadParams(cmd *cobra.Command, rootDir string) (*common.Params, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	params, err := common.LoadParams(rootDir, configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("log-level") {
		params.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("trash-dir") {
		params.TrashDir, _ = flags.GetString("trash-dir")
	}
	if flags.Changed("permanent-delete") {
		params.PermanentDelete, _ = flags.GetBool("permanent-delete")
	}
	if flags.Changed("include-videos") {
		params.IncludeVideos, _ = flags.GetBool("include-videos")
	}
	return params, params.Validate()
}

func openStores(cmd *cobra.Command, params *common.Params) (*backend.Stores, error) {
	if inMemory, _ := cmd.Flags().GetBool("in-memory"); inMemory {
		return backend.InitializeInMemoryStores(params)
	}
	return backend.InitializeStores(params)
}

// initFileLogger sends log output to the log file so that it does not
// mix with the terminal UI.
func initFileLogger(params *common.Params) (func(), error) {
	logFile := params.ResolvedLogFile()
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.Initialize(logger.StringToLogLevel(params.LogLevel), file)
	return func() {
		_ = file.Close()
	}, nil
}

func runTui(cmd *cobra.Command, args []string) error {
	rootDir, err := rootDirFromArgs(args)
	if err != nil {
		return err
	}
	params, err := loadParams(cmd, rootDir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", rootDir)
	}

	closeLog, err := initFileLogger(params)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info.Printf("Starting %s for '%s'", constants.AppName, rootDir)

	stores, err := openStores(cmd, params)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer stores.Close()

	brokers := backend.InitializeEventBrokers(params.EventBusQueueSize)
	dispatcher := tui.NewProgramDispatcher()
	services := backend.InitializeServices(params, stores, brokers.Broker, dispatcher)

	model := tui.NewModel(tui.Options{
		Triage: services.TriageService,
		Images: services.ImageCache,
		Scan:   services.ScanLibrary,
	})
	model.Subscribe(brokers.Broker, dispatcher)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	dispatcher.SetProgram(program)
	_, err = program.Run()
	return err
}
