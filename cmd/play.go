package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a saved lesson plan",
	Long: `Play a lesson plan from a JSON file without calling an LLM.

Use --sample for the built-in demo lesson.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := planFromFlags(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, plan)
	},
}

func init() {
	playCmd.Flags().String("plan", "", "Path to a lesson plan JSON file")
	playCmd.Flags().Bool("sample", false, "Play the built-in sample lesson")
}

// planFromFlags loads the plan named by --plan or --sample.
func planFromFlags(cmd *cobra.Command) (*lessonplan.LessonPlan, error) {
	path, _ := cmd.Flags().GetString("plan")
	sample, _ := cmd.Flags().GetBool("sample")

	switch {
	case path != "" && sample:
		return nil, errors.New("use --plan or --sample, not both")
	case sample:
		return lessonplan.Sample(), nil
	case path == "":
		return nil, errors.New("--plan or --sample is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	plan, err := lessonplan.Ingest(raw)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", path, err)
	}
	return plan, nil
}
