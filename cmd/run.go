package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/app"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-nil plan skips lesson setup.
func runApp(cmd *cobra.Command, plan *lessonplan.LessonPlan) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Session: d.newSession(),
		Plan:    plan,
		Logger:  d.log,
	}
	if d.generator != nil {
		opts.Generator = d.generator
	} else if plan == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured.")
		fmt.Fprintln(os.Stderr, "Set an API key or run `lessonarcade play --sample`.")
		return app.ErrNothingToPlay
	}

	return app.Run(opts)
}
