package console

import (
	"fmt"
	"io"
	"sync"
)

// Alerter prints blocking failures so they stand out from the redrawn screen.
type Alerter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewAlerter(out io.Writer) *Alerter {
	return &Alerter{out: out}
}

func (a *Alerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, "⚠️ %s\n", message)
}
