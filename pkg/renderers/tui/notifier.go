package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goliatone/go-formfields/pkg/screen"
)

// Notifier prints screen notifications to a terminal.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

var _ screen.Notifier = (*Notifier)(nil)

// NewNotifier returns a notifier writing to out, or to stdout when out is nil.
func NewNotifier(out io.Writer, styles Styles) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{out: out, styles: styles}
}

func (n *Notifier) Success(title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.styles.Success.Render("✔ "+title))
	if description != "" {
		fmt.Fprintln(n.out, n.styles.Muted.Render(description))
	}
}

func (n *Notifier) Error(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.styles.Error.Render("✖ "+title))
}
