package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/lessongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson plan and save it as JSON",
	Long: `Generate a lesson plan with the configured LLM provider.

The content is read from --content-file, or from stdin when the file is "-".
The plan can be played later with "lessonarcade play --plan <file>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		grade, _ := cmd.Flags().GetString("grade")
		contentFile, _ := cmd.Flags().GetString("content-file")
		output, _ := cmd.Flags().GetString("output")

		content, err := readContent(cmd, contentFile)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if d.generator == nil {
			return errors.New("LLM provider not configured")
		}

		plan, err := d.generator.Generate(cmd.Context(), lessongen.Request{
			Topic:      topic,
			Content:    content,
			GradeLevel: grade,
		})
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		data = append(data, '\n')

		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %q to %s\n", plan.Topic, output)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Lesson topic")
	generateCmd.Flags().String("grade", "", "Grade level, e.g. \"8th Grade\"")
	generateCmd.Flags().String("content-file", "", "File with lesson notes (\"-\" for stdin)")
	generateCmd.Flags().StringP("output", "o", "", "Write the plan here instead of stdout")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("grade")
	_ = generateCmd.MarkFlagRequired("content-file")
}

func readContent(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}
