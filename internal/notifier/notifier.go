package notifier

import (
	"fmt"
	"os/exec"

	"github.com/gen2brain/beeep"

	"github.com/777genius/audio-switcher/internal/audio"
	"github.com/777genius/audio-switcher/internal/config"
	"github.com/777genius/audio-switcher/internal/logging"
	"github.com/777genius/audio-switcher/internal/platform"
)

const appName = "Audio Switcher"

// soundPlayer is the part of audio.Player the notifier needs
type soundPlayer interface {
	Play(soundPath string) error
	Close() error
}

// Notifier tells the user which output is now active
type Notifier struct {
	cfg *config.Config

	// Overridable for tests
	commandAvailable func(name string) bool
	runCommand       func(name string, args ...string) error
	beeepNotify      func(title, message, icon string) error
	newPlayer        func(deviceName string, volume float64) (soundPlayer, error)
}

// New creates a new notifier
func New(cfg *config.Config) *Notifier {
	return &Notifier{
		cfg:              cfg,
		commandAvailable: platform.CommandAvailable,
		runCommand:       runCommand,
		beeepNotify: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		newPlayer: func(deviceName string, volume float64) (soundPlayer, error) {
			return audio.NewPlayer(deviceName, volume)
		},
	}
}

// SendSwitched announces that label became the default output and plays the
// configured chime on it. The chime never fails the call.
func (n *Notifier) SendSwitched(label string) error {
	err := n.sendDesktop(label)
	if n.cfg.IsSoundEnabled() {
		n.playSound(label, n.cfg.Notifications.Desktop.SoundFile)
	}
	return err
}

func (n *Notifier) sendDesktop(label string) error {
	if !n.cfg.IsDesktopEnabled() {
		logging.Debug("Desktop notifications disabled, skipping")
		return nil
	}

	title := n.cfg.Notifications.Desktop.Title
	message := fmt.Sprintf("Audio switched to %s", label)
	icon := n.cfg.Notifications.Desktop.Icon

	switch n.cfg.Notifications.Desktop.Method {
	case "notify-send":
		return n.sendWithNotifySend(title, message, icon)

	case "beeep":
		return n.sendWithBeeep(title, message, icon)

	default:
		// "auto": notify-send gives transient notifications that do not pile up
		if n.commandAvailable("notify-send") {
			if err := n.sendWithNotifySend(title, message, icon); err != nil {
				logging.Warn("notify-send failed, falling back to beeep: %v", err)
			} else {
				return nil
			}
		}
		return n.sendWithBeeep(title, message, icon)
	}
}

func (n *Notifier) sendWithNotifySend(title, message, icon string) error {
	if err := n.runCommand("notify-send", buildNotifySendArgs(title, message, icon)...); err != nil {
		return fmt.Errorf("notify-send error: %w", err)
	}
	logging.Debug("Desktop notification sent via notify-send: %s", message)
	return nil
}

// buildNotifySendArgs constructs command-line arguments for notify-send
func buildNotifySendArgs(title, message, icon string) []string {
	args := []string{"-h", "int:transient:1"}
	if icon != "" {
		args = append(args, "-i", icon)
	}
	return append(args, title, message)
}

// sendWithBeeep sends notification via beeep (cross-platform)
func (n *Notifier) sendWithBeeep(title, message, icon string) error {
	// One AppName for every switch so the latest notification replaces the last
	originalAppName := beeep.AppName
	beeep.AppName = appName
	defer func() {
		beeep.AppName = originalAppName
	}()

	if err := n.beeepNotify(title, message, icon); err != nil {
		logging.Error("Failed to send desktop notification: %v", err)
		return err
	}

	logging.Debug("Desktop notification sent via beeep: %s", message)
	return nil
}

// playSound plays soundPath on the device named label, falling back to the
// system default when the backend has no device by that name
func (n *Notifier) playSound(label, soundPath string) {
	if !platform.FileExists(soundPath) {
		logging.Warn("Sound file not found: %s", soundPath)
		return
	}

	volume := n.cfg.Notifications.Desktop.Volume
	player, err := n.newPlayer(label, volume)
	if err != nil {
		logging.Debug("No backend device for %q (%v), using default device", label, err)
		player, err = n.newPlayer("", volume)
		if err != nil {
			logging.Warn("Failed to init audio player: %v", err)
			return
		}
	}
	defer player.Close()

	if err := player.Play(soundPath); err != nil {
		logging.Warn("Failed to play sound %s: %v", soundPath, err)
	}
}

func runCommand(name string, args ...string) error {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w, output: %s", err, string(output))
	}
	return nil
}
