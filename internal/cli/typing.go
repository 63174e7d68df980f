package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"WordFreq/internal/session"
)

// endOfInput is the line that finishes a typing test.
const endOfInput = "."

func newTypingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "typing",
		Short: "Measure typing speed in words per minute",
		Long: `Press Enter to start the timer, type your text, then finish with a line
containing only "." (or end of input) to stop it and print your WPM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.sessionOptions()
			if err != nil {
				return err
			}
			return runTyping(session.New(opts), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runTyping(s *session.Session, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	fmt.Fprintln(out, "Press Enter to start the timer.")
	if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
		return errors.Wrap(err, "read input")
	}
	if err := s.StartTimer(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Word Count: 0 (Timer started). Type, then enter %q on its own line.\n", endOfInput)

	var typed strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line == "" && err == io.EOF {
			break
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == endOfInput {
			break
		}
		typed.WriteString(trimmed)
		typed.WriteByte('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
	}

	s.SetText(typed.String())
	res, err := s.StopTimer()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Word Count: %d\n", res.Words)
	fmt.Fprintf(out, "Words Per Minute (WPM): %d\n", res.WPM)
	return nil
}
