package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cycleinsights/internal/cli"
	"github.com/terraincognita07/cycleinsights/internal/config"
	"github.com/terraincognita07/cycleinsights/internal/db"
	"github.com/terraincognita07/cycleinsights/internal/i18n"
	"github.com/terraincognita07/cycleinsights/internal/services"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "cycleinsights",
		Short:         "Self-hosted cycle tracker with retrospective insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newReportCmd(&configPath))
	root.AddCommand(newCreateOwnerCmd(&configPath))
	root.AddCommand(newResetPasswordCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	return root
}

// commandEnv is the state every command shares: the resolved config, the open
// database and the owner's timezone.
type commandEnv struct {
	config   config.Config
	database *gorm.DB
	location *time.Location
}

func loadCommandEnv(configPath string) (*commandEnv, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		log.Printf("%v, falling back to UTC", err)
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return &commandEnv{config: cfg, database: database, location: location}, nil
}

func (rt *commandEnv) close() {
	sqlDB, err := rt.database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}

func (rt *commandEnv) authService() *services.AuthService {
	return services.NewAuthService(db.NewRepositories(rt.database).Users)
}

func newReportCmd(configPath *string) *cobra.Command {
	var email, language string
	var cycles, width int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a terminal report of cycle statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadCommandEnv(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			i18nManager, err := i18n.NewManager(rt.config.DefaultLanguage)
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			if language == "" {
				language = i18nManager.DefaultLanguage()
			}

			repositories := db.NewRepositories(rt.database)
			dayService := services.NewDayService(repositories.DayLogs, repositories.Users)
			return cli.RunReportCommand(cmd.OutOrStdout(), repositories.Users, services.NewInsightsService(dayService), i18nManager, cli.ReportOptions{
				Email:    email,
				Cycles:   cycles,
				Language: i18nManager.NormalizeLanguage(language),
				Width:    width,
				Now:      services.DateOnly(time.Now().In(rt.location)),
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "owner email")
	cmd.Flags().IntVar(&cycles, "cycles", services.DefaultInsightsCycleCount, "number of recent cycles: 3, 6 or 12")
	cmd.Flags().StringVar(&language, "lang", "", "report language (defaults to DEFAULT_LANGUAGE)")
	cmd.Flags().IntVar(&width, "width", 0, "report width in columns")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCreateOwnerCmd(configPath *string) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-owner",
		Short: "Create the owner profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadCommandEnv(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			password, err := cli.PromptNewPassword(os.Stdin, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return cli.RunCreateOwnerCommand(cmd.OutOrStdout(), rt.authService(), email, password, time.Now().In(rt.location))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "owner email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd(configPath *string) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace the owner's password with a generated one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadCommandEnv(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			return cli.RunResetPasswordCommand(cmd.OutOrStdout(), rt.authService(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "owner email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and list the applied ones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadCommandEnv(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			applied, err := db.AppliedMigrations(rt.database)
			if err != nil {
				return err
			}
			for _, migration := range applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (applied %s)\n",
					migration.Version, migration.Name, migration.AppliedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}
