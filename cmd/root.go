package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/config"
	"github.com/abhisek/lessonarcade/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lessonarcade",
	Short: "Turn lesson notes into a playable mini-game",
	Long: "LessonArcade turns a topic and your notes into a themed lesson plan and plays it " +
		"as a timeline puzzle, a quiz and a fastest finger round.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/lessonarcade/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESSONARCADE_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file and LESSONARCADE_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
