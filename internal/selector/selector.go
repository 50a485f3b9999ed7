package selector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/777genius/audio-switcher/internal/inventory"
	"github.com/777genius/audio-switcher/internal/logging"
	"github.com/777genius/audio-switcher/internal/pulse"
)

// sinkSwitcher applies a new default sink
type sinkSwitcher interface {
	SetDefaultSink(ctx context.Context, index int) error
}

// switchNotifier announces a completed switch
type switchNotifier interface {
	SendSwitched(label string) error
}

// Options mirror the command-line flags
type Options struct {
	List bool
	// Device is nil when no device was requested; an empty label is still validated
	Device  *string
	Outputs []string
	DryRun  bool
}

// Selector picks and applies the target sink
type Selector struct {
	sinks    sinkSwitcher
	notifier switchNotifier
	out      io.Writer
}

// New creates a selector writing user-facing output to out
func New(sinks sinkSwitcher, notifier switchNotifier, out io.Writer) *Selector {
	return &Selector{
		sinks:    sinks,
		notifier: notifier,
		out:      out,
	}
}

// Run lists, switches to an explicit device, or cycles to the next device.
// Every requested label is checked before any sink command runs.
func (s *Selector) Run(ctx context.Context, listing pulse.Listing, opts Options) error {
	inv := listing.Inventory
	if inv == nil {
		inv = &inventory.Inventory{}
	}

	if opts.List {
		s.printLabels(inv)
		return nil
	}

	if opts.Device != nil {
		target, err := inv.Require(*opts.Device)
		if err != nil {
			return s.reportUnknown(err)
		}
		return s.switchTo(ctx, target, opts.DryRun)
	}

	if len(opts.Outputs) > 0 {
		narrowed, err := inv.Restrict(opts.Outputs)
		if err != nil {
			return s.reportUnknown(err)
		}
		logging.Debug("Cycling restricted to %v", narrowed.Labels())
		inv = narrowed
	}

	target, err := inv.Next(listing.Current)
	if err != nil {
		return err
	}
	logging.Debug("Cycling from %q to %q", listing.Current, target.Label)
	return s.switchTo(ctx, target, opts.DryRun)
}

func (s *Selector) switchTo(ctx context.Context, target inventory.Device, dryRun bool) error {
	if dryRun {
		fmt.Fprintf(s.out, "%s (index %d)\n", target.Label, target.Index)
		return nil
	}

	if err := s.sinks.SetDefaultSink(ctx, target.Index); err != nil {
		return err
	}
	logging.Info("Switched default sink to %q (index %d)", target.Label, target.Index)

	if err := s.notifier.SendSwitched(target.Label); err != nil {
		// the switch itself succeeded
		logging.Warn("Notification failed: %v", err)
	}
	return nil
}

func (s *Selector) reportUnknown(err error) error {
	var unknown *inventory.UnknownDeviceError
	if errors.As(err, &unknown) {
		fmt.Fprintf(s.out, "%s is not a valid choice. Please choose from the following:\n", unknown.Label)
		for _, label := range unknown.Choices {
			fmt.Fprintln(s.out, label)
		}
	}
	return err
}

func (s *Selector) printLabels(inv *inventory.Inventory) {
	for _, label := range inv.Labels() {
		fmt.Fprintln(s.out, label)
	}
}
