package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter signals that a request is in flight.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: os.Stderr}
	}
	return &TerminalReporter{w: os.Stderr}
}

// Nop reports nothing.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Finish()      {}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(message string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	_ = r.bar.Add(1)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// CIReporter prints one line per request, suitable for CI logs.
type CIReporter struct {
	w io.Writer
}

func (r *CIReporter) Start(message string) {
	fmt.Fprintln(r.w, message)
}

func (r *CIReporter) Finish() {}
