// Package confirm is the blocking yes/no gate used before destructive
// actions: rating submissions, deletes, request approvals, the database
// remap.
package confirm

import "sync"

// Config describes the prompt shown to the user.
type Config struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Kind        string // info, warning, danger, success
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "Confirm action"
	}
	if c.Message == "" {
		c.Message = "Are you sure you want to continue?"
	}
	if c.ConfirmText == "" {
		c.ConfirmText = "Confirm"
	}
	if c.CancelText == "" {
		c.CancelText = "Cancel"
	}
	if c.Kind == "" {
		c.Kind = "info"
	}
	return c
}

// Gate is a single-flight confirmation prompt. A Request made while an
// earlier one is unresolved silently replaces it: the earlier caller's
// channel never settles and the user's answer goes to the latest caller.
// Last caller wins; known behavior carried over from the original modal.
type Gate struct {
	mu      sync.Mutex
	pending chan bool
	config  Config
}

// NewGate returns an idle gate.
func NewGate() *Gate {
	return &Gate{}
}

// Request arms the gate and returns the channel the answer arrives on.
// The channel settles exactly once, with true on Confirm and false on
// Cancel, unless a later Request displaces it.
func (g *Gate) Request(cfg Config) <-chan bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = cfg.withDefaults()
	g.pending = make(chan bool, 1)
	return g.pending
}

// Pending reports whether a prompt is waiting and its configuration.
func (g *Gate) Pending() (Config, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.config, g.pending != nil
}

// Confirm settles the pending prompt with true. No-op when idle.
func (g *Gate) Confirm() {
	g.settle(true)
}

// Cancel settles the pending prompt with false; backdrop dismissal routes
// here too. No-op when idle.
func (g *Gate) Cancel() {
	g.settle(false)
}

func (g *Gate) settle(answer bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return
	}
	g.pending <- answer
	g.pending = nil
	g.config = Config{}
}
