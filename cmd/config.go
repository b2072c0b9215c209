package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for vidshare.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [DATABASE_URL]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with database, storage and logging settings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var databaseURL string
		if len(args) > 0 {
			databaseURL = args[0]
		}

		if err := config.InitConfig(databaseURL); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Created configuration file: %s\n", configPath)
		cmd.Println("Please edit the database_url and storage settings in this file to match your environment.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path and the effective settings. Secrets are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Configuration file: %s\n\n", configPath)

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		printConfig(cmd, cfg)
		return nil
	},
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	dbURL := cfg.DatabaseURL
	if db, err := cfg.ParseDatabaseConfig(); err == nil {
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%d/%s", db.User, mask(db.Password), db.Host, db.Port, db.DBName)
	}

	cmd.Printf("DATABASE_URL:     %s\n", dbURL)
	cmd.Printf("LOG_LEVEL:        %s\n", cfg.LogLevel)
	cmd.Printf("LOG_FORMAT:       %s\n", cfg.LogFormat)
	cmd.Printf("ENVIRONMENT:      %s\n", cfg.Environment)
	cmd.Printf("SENTRY_DSN:       %s\n", mask(cfg.SentryDSN))
	cmd.Printf("TOGGLE_ATTEMPTS:  %d\n", cfg.ToggleAttempts)
	cmd.Printf("STMT_TIMEOUT:     %s\n", cfg.StatementTimeout)
	cmd.Printf("MINIO_ENDPOINT:   %s\n", cfg.Storage.Endpoint)
	cmd.Printf("MINIO_BUCKET:     %s\n", cfg.Storage.Bucket)
	cmd.Printf("MINIO_ACCESS_KEY: %s\n", mask(cfg.Storage.AccessKey))
	cmd.Printf("MINIO_SECRET_KEY: %s\n", mask(cfg.Storage.SecretKey))
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "****"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
