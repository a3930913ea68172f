package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/session"
	"github.com/abhisek/lessonarcade/internal/ui/layout"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a lesson plan line by line in the console (no TUI, no database)",
	Long: `Walk through a lesson plan in plain text, answering on stdin.

This is a stateless developer tool for checking a generated plan before
playing it for real. No database, no LLM calls, no completion delays.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("plan", "", "Path to a lesson plan JSON file")
	previewCmd.Flags().Bool("sample", false, "Preview the built-in sample lesson")
}

var errInputClosed = errors.New("input closed")

// manualScheduler never fires; the console completes stages itself.
type manualScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (manualScheduler) AfterFunc(time.Duration, func()) session.Timer { return idleTimer{} }

func runPreview(cmd *cobra.Command, args []string) error {
	plan, err := planFromFlags(cmd)
	if err != nil {
		return err
	}
	sess := session.New(session.Options{Scheduler: manualScheduler{}})
	if _, err := sess.Start(plan); err != nil {
		return err
	}
	return playConsole(sess, os.Stdin, cmd.OutOrStdout())
}

// console plays a started session against a line reader.
type console struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

func playConsole(sess *session.Session, in io.Reader, out io.Writer) error {
	c := &console{sess: sess, in: bufio.NewScanner(in), out: out}
	for {
		st := sess.State()
		if !st.Active {
			return session.ErrNoSession
		}

		var err error
		switch st.Kind() {
		case session.KindWelcome:
			fmt.Fprintf(out, "══ %s ══\n\n", st.Topic)
			err = sess.Advance()
		case session.KindInfoSlide:
			err = c.slide(st)
		case session.KindChronology:
			err = c.chronology(st)
		case session.KindQuiz:
			err = c.quiz(st)
		case session.KindFastestFinger:
			err = c.fastestFinger(st)
		case session.KindResults:
			c.results(st)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readChoice reads a 1-based option number.
func (c *console) readChoice(n int) (int, error) {
	for {
		line, err := c.readLine("\nYour answer: ")
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(line)
		if err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(c.out, "Enter a number from 1 to %d.\n", n)
	}
}

func (c *console) slide(st session.State) error {
	if st.Slide != nil {
		fmt.Fprintf(c.out, "── %s ──\n", st.Slide.Title)
		for _, p := range st.Slide.Paragraphs {
			fmt.Fprintf(c.out, "%s\n\n", p)
		}
	}
	if _, err := c.readLine("[Enter to continue] "); err != nil {
		return err
	}
	return c.sess.Advance()
}

func (c *console) chronology(st session.State) error {
	chron := st.Chronology
	if chron.Solved {
		return c.sess.CompleteCurrentActivity()
	}

	fmt.Fprintln(c.out, "── Stage 1: The Timeline ──")
	for i, item := range chron.Target {
		fmt.Fprintf(c.out, "  ✓ %d. %s\n", i+1, item.Text)
	}
	for i, item := range chron.Pool {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, item.Text)
	}

	line, err := c.readLine("\nRemaining events in order (e.g. 2 1 3): ")
	if err != nil {
		return err
	}
	for _, f := range strings.Fields(line) {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > len(chron.Pool) {
			continue
		}
		if err := c.sess.PlaceItem(chron.Pool[i-1].ID); err != nil {
			return err
		}
	}

	res, err := c.sess.VerifyOrder()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n\n", res.Message)
	return nil
}

func (c *console) quiz(st session.State) error {
	q := st.Quiz
	if q.Finished {
		fmt.Fprintln(c.out, "Quiz Completed!")
		fmt.Fprintln(c.out)
		return c.sess.CompleteCurrentActivity()
	}

	fmt.Fprintf(c.out, "── Question %d of %d ──\n%s\n", q.Index+1, q.Total, q.Question.Question)
	for i, opt := range q.Question.Options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, opt)
	}
	i, err := c.readChoice(len(q.Question.Options))
	if err != nil {
		return err
	}
	if err := c.sess.SelectAnswer(q.Question.Options[i]); err != nil {
		return err
	}
	fb, err := c.sess.SubmitAnswer()
	if err != nil {
		return err
	}
	c.feedback(fb.Correct, fb.Message)
	return c.sess.NextQuestion()
}

func (c *console) fastestFinger(st session.State) error {
	ff := st.FastestFinger
	if !ff.Playable {
		fmt.Fprintf(c.out, "%s\n\n", ff.Message)
		return c.sess.Advance()
	}
	if ff.Finished {
		fmt.Fprintln(c.out, "Final Challenge Complete!")
		fmt.Fprintln(c.out)
		return c.sess.CompleteCurrentActivity()
	}

	fmt.Fprintf(c.out, "── Fastest Finger %d of %d ──\nWhich set of keywords belongs to: %s\n",
		ff.Index+1, ff.Total, ff.Question.Prompt)
	for i, opt := range ff.Question.Options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, strings.Join(opt.Keywords, ", "))
	}
	i, err := c.readChoice(len(ff.Question.Options))
	if err != nil {
		return err
	}
	fb, err := c.sess.PickConcept(ff.Question.Options[i].ConceptID)
	if err != nil {
		return err
	}
	c.feedback(fb.Correct, fb.Message)
	return c.sess.NextConcept()
}

func (c *console) feedback(correct bool, msg string) {
	if correct {
		fmt.Fprintf(c.out, "\033[32m✓ %s\033[0m\n\n", msg)
		return
	}
	fmt.Fprintf(c.out, "\033[31m✗ %s\033[0m\n\n", msg)
}

func (c *console) results(st session.State) {
	pointName := "points"
	if st.Theme != nil {
		pointName = st.Theme.PointName
	}
	fmt.Fprintln(c.out, "── Your Journey is Complete! ──")
	fmt.Fprintf(c.out, "Final title: %s\n", st.Title)
	fmt.Fprintf(c.out, "Total %s earned: %s\n", pointName, layout.FormatScore(st.Score))
}
