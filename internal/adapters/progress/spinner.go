package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// SpinnerSink renders transaction stages with a spinner on stderr
type SpinnerSink struct {
	spinner    *spinner.Spinner
	out        io.Writer
	stage      string
	stageStart time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{spinner: s, out: out}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.stage {
		r.completeStage()
		r.stage = event.Stage
		r.stageStart = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Message != "" {
		fmt.Fprintln(r.out, event.Message)
	}
	if event.Stage == usecase.StageCompleted {
		r.stage = ""
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// pause stops the spinner while fn writes, then restarts it
func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// completeStage prints a check line for the stage that just ended
func (r *SpinnerSink) completeStage() {
	if r.stage == "" {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	elapsed := time.Since(r.stageStart).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s (%s)\n", color.GreenString("✓"), r.stage, elapsed)
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
