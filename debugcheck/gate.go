package debugcheck

import (
	"log/slog"

	"github.com/streamcodec/goldfish/goldfisherr"
)

// Gate tracks whether a child reader or writer handle is still live.
// It is created armed and is disarmed exactly once, either because
// the handle was driven to completion or because it was explicitly
// closed. A nil *Gate is always treated as disarmed, so the top-level
// document — which has no parent to protect — can share the same
// code paths as every nested level.
type Gate struct {
	armed  bool
	logger *slog.Logger
	what   string
}

func newGate(logger *slog.Logger, what string) *Gate {
	return &Gate{armed: true, logger: logger, what: what}
}

func (g *Gate) disarm() {
	if g == nil {
		return
	}
	g.armed = false
}

// check fails with goldfisherr.Misused if g is still armed, logging
// the violation at debug level if a logger was configured (the same
// nil-safe *slog.Logger field pattern used throughout this module's
// ambient logging).
func (g *Gate) check() error {
	if g == nil || !g.armed {
		return nil
	}
	if g.logger != nil {
		g.logger.Debug("goldfish: parent accessed while child still live", "kind", g.what)
	}
	return goldfisherr.New(goldfisherr.Misused, "accessed %s's parent before finishing it", g.what)
}
