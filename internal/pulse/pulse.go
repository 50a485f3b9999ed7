// ABOUTME: Talks to the sound server through its control CLI (pacmd by default).
// ABOUTME: Lists sinks by scraping text output and switches the default sink.

package pulse

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/777genius/audio-switcher/internal/config"
	"github.com/777genius/audio-switcher/internal/logging"
)

// Runner executes an external command and returns its stdout
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args. Stderr is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Client lists and switches sinks
type Client struct {
	runner      Runner
	listCommand []string
	setCommand  []string
	timeout     time.Duration
}

// New creates a client for the commands configured in cfg
func New(cfg *config.Config, runner Runner) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{
		runner:      runner,
		listCommand: cfg.Pulse.ListCommand,
		setCommand:  cfg.Pulse.SetCommand,
		timeout:     cfg.CommandTimeout(),
	}
}

// ListSinks runs the listing command and parses its output
func (c *Client) ListSinks(ctx context.Context) (Listing, error) {
	out, err := c.run(ctx, c.listCommand)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to list sinks: %w", err)
	}

	listing, err := Parse(bytes.NewReader(out))
	if err != nil {
		return Listing{}, err
	}

	logging.Debug("Listed %d sinks, current=%q", listing.Inventory.Len(), listing.Current)
	return listing, nil
}

// SetDefaultSink makes the sink with the given index the default output
func (c *Client) SetDefaultSink(ctx context.Context, index int) error {
	argv := append(append([]string(nil), c.setCommand...), strconv.Itoa(index))
	if _, err := c.run(ctx, argv); err != nil {
		return fmt.Errorf("failed to set default sink %d: %w", index, err)
	}
	logging.Debug("Default sink set to index %d", index)
	return nil
}

func (c *Client) run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	logging.Debug("Running %s", strings.Join(argv, " "))
	return c.runner.Run(ctx, argv[0], argv[1:]...)
}
