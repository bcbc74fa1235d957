package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"compass/internal/ports"
)

// Launcher implements ports.Launcher and ports.DirectoryOpener by starting
// external processes without waiting for them
type Launcher struct {
	goos  string
	start func(*exec.Cmd) error
	log   *zap.Logger
}

var (
	_ ports.Launcher        = (*Launcher)(nil)
	_ ports.DirectoryOpener = (*Launcher)(nil)
)

// Option configures the Launcher
type Option func(*Launcher)

// WithLogger sets the logger used to record launches
func WithLogger(log *zap.Logger) Option {
	return func(l *Launcher) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a launcher for the current operating system
func New(opts ...Option) *Launcher {
	l := &Launcher{
		goos:  runtime.GOOS,
		start: startDetached,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts ide with paths as arguments and returns once the process
// has started
func (l *Launcher) Launch(ide string, paths []string) error {
	cmd, err := l.Command(ide, paths)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	l.log.Info("launched ide", zap.String("ide", ide), zap.Strings("paths", paths))
	return nil
}

// Command returns the exec.Cmd for opening paths in ide.
// ide may carry its own flags, e.g. "code --new-window".
func (l *Launcher) Command(ide string, paths []string) (*exec.Cmd, error) {
	fields := strings.Fields(ide)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no IDE command configured")
	}

	args := append(fields[1:], paths...)
	return exec.Command(fields[0], args...), nil
}

// OpenDirectory reveals path in the system file manager
func (l *Launcher) OpenDirectory(path string) error {
	cmd, err := openCommand(l.goos, path)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	l.log.Debug("opened directory", zap.String("path", path))
	return nil
}

func openCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// startDetached starts cmd and releases it so the child outlives compass
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
