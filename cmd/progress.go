package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// progress draws a "[done/total]" counter on a terminal. It stays silent
// when out is not a TTY so piped output and CI logs are not cluttered.
// A nil *progress is a no-op.
type progress struct {
	out   io.Writer
	total int

	mu   sync.Mutex
	done int
}

// newProgress returns nil unless out is a terminal.
func newProgress(out io.Writer, total int) *progress {
	if !isTTY(out) || total == 0 {
		return nil
	}
	return &progress{out: out, total: total}
}

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *progress) step() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	fmt.Fprintf(p.out, "\r  [%d/%d] linking notes...", p.done, p.total)
}

// finish clears the counter line.
func (p *progress) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, "\r\033[K")
}
