package cli

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bumpline/bumpline/pkg/observability"
)

// spinnerHooks drives a spinner's message from resolution progress
// events. Packages resolve concurrently, so the message shows the
// completed count rather than any single module name.
type spinnerHooks struct {
	observability.NoopResolutionHooks

	spin  *spinner
	total int
	done  atomic.Int64
}

// newSpinnerHooks creates resolution hooks that update spin as each of
// total packages completes.
func newSpinnerHooks(spin *spinner, total int) *spinnerHooks {
	return &spinnerHooks{spin: spin, total: total}
}

// OnPackageComplete advances the completion counter and refreshes the
// spinner message.
func (h *spinnerHooks) OnPackageComplete(_ context.Context, _, _ string, _ time.Duration, _ error) {
	h.spin.SetMessage(fmt.Sprintf("Resolving packages... %d/%d", h.done.Add(1), h.total))
}

// gitLogHooks logs each finished git subprocess at debug level with its
// argv and wall time. The resolver logs what it learned from the output;
// these lines show what it cost.
type gitLogHooks struct {
	logger *log.Logger
}

func (h *gitLogHooks) OnCommand(context.Context, string, []string) {}

// OnCommandComplete logs the finished command, adding the error when it
// failed.
func (h *gitLogHooks) OnCommandComplete(_ context.Context, _ string, args []string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("git command failed", "args", strings.Join(args, " "), "duration", duration.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("git command", "args", strings.Join(args, " "), "duration", duration.Round(time.Millisecond))
}
