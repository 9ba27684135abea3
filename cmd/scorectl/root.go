package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Spok95/progbase-bot/internal/bot"
	"github.com/Spok95/progbase-bot/internal/config"
	"github.com/Spok95/progbase-bot/internal/db"
	"github.com/Spok95/progbase-bot/internal/export"
	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/models"
)

var (
	username string
	moduleID string
	output   string
)

var rootCmd = &cobra.Command{
	Use:           "scorectl",
	Short:         "Operator tools for the Progbase scores bot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|status]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "status"},
	RunE:      runMigrate,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the module report a student would get from the bot",
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export module scores of all students to an Excel file",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(migrateCmd, reportCmd, exportCmd)

	reportCmd.Flags().StringVarP(&username, "user", "u", "", "Telegram username of the student")
	reportCmd.Flags().StringVarP(&moduleID, "module", "m", "", "Module id (progbase, progbase2, webprogbase)")
	_ = reportCmd.MarkFlagRequired("user")
	_ = reportCmd.MarkFlagRequired("module")

	exportCmd.Flags().StringVarP(&moduleID, "module", "m", "", "Module id")
	exportCmd.Flags().StringVarP(&output, "out", "o", "", "Output .xlsx file (default <module>_scores.xlsx)")
	_ = exportCmd.MarkFlagRequired("module")
}

func openDB(ctx context.Context) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return cfg, database, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	action := "up"
	if len(args) == 1 {
		action = args[0]
	}
	switch action {
	case "up":
		return db.Migrate(ctx, database)
	case "status":
		return db.MigrationStatus(ctx, database)
	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	router := bot.NewRouter(db.NewStore(database), nil, links.New(cfg.ProgbaseURL), logging.Nop())
	text, err := router.ModuleReport(ctx, username, moduleID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()
	store := db.NewStore(database)

	tasks, err := store.ListModuleTasks(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	results, err := store.ListModuleResults(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}

	var visible []models.Task
	for _, t := range tasks {
		if t.IsPublished {
			visible = append(visible, t)
		}
	}

	bar := progressbar.NewOptions(export.StudentCount(results),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Exporting "+moduleID),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	f, err := export.ModuleWorkbook(moduleID, visible, results, func() { _ = bar.Add(1) })
	if err != nil {
		return err
	}
	defer f.Close()
	_ = bar.Finish()

	path := output
	if path == "" {
		path = export.ModuleFilename(moduleID)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d students to %s\n", export.StudentCount(results), path)
	return nil
}
