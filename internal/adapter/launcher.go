package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Launcher starts trailers in an external player
type Launcher struct {
	command  string   // configured player command, empty for detection
	args     []string // additional arguments for the player
	muteFlag string   // flag that starts the player without sound
	logger   *slog.Logger
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command (e.g., ["-n"])
}

// playerConfig defines platform-specific launch configurations for a player
type playerConfig struct {
	muteFlag  string                  // Start muted (e.g., "--mute=yes")
	platforms map[string][]launchPath // Platform -> launch paths to try in order
}

// players registry - single source of truth for all player configuration
var players = map[string]playerConfig{
	"mpv": {
		muteFlag: "--mute=yes",
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	"vlc": {
		muteFlag: "--no-audio",
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "vlc"},
				{path: "open-a:VLC"},
			},
			"linux":   {{path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	"iina": {
		muteFlag: "--mpv-mute=yes",
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "open-a:IINA", openFlags: []string{"-n"}}, // IINA needs -n for new windows
			},
		},
	},
	"celluloid": {
		muteFlag: "--mpv-mute=yes",
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a new Launcher, detecting the mute flag of known players
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	var muteFlag string
	if command != "" {
		if cfg, ok := players[playerName(command)]; ok {
			muteFlag = cfg.muteFlag
			logger.Debug("auto-detected player mute flag", "player", playerName(command), "flag", muteFlag)
		}
	}

	return &Launcher{
		command:  command,
		args:     args,
		muteFlag: muteFlag,
		logger:   logger,
	}
}

// playerName normalizes a command to a registry key
func playerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// Launch opens target in the configured player, a detected player, or
// the system URL handler, in that order. Sessions from the system
// handler cannot be stopped.
func (l *Launcher) Launch(target domain.PlaybackTarget) (domain.PlayerSession, error) {
	// Tier 1: User configured a specific player
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.launchConfigured(target)
	}

	// Tier 2: Try candidate chain (IINA → mpv on macOS, etc.)
	if session, name, err := detectAndLaunch(target, l.logger); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return session, nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(target)
}

// withMute appends the mute flag when the target asks for silence
func withMute(args []string, muteFlag string, muted bool) []string {
	out := append([]string{}, args...)
	if muted && muteFlag != "" {
		out = append(out, muteFlag)
	}
	return out
}

// configuredArgs builds the argument list for the configured player
func (l *Launcher) configuredArgs(target domain.PlaybackTarget) []string {
	if target.Muted && l.muteFlag == "" {
		l.logger.Warn("cannot start muted - unknown player", "command", l.command)
	}
	return append(withMute(l.args, l.muteFlag, target.Muted), target.URL)
}

// openArgs builds the argument list for macOS "open -a"
func openArgs(app string, openFlags, playerArgs []string, url string) []string {
	cmdArgs := make([]string, len(openFlags))
	copy(cmdArgs, openFlags)

	cmdArgs = append(cmdArgs, "-a", app)
	if len(playerArgs) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, playerArgs...)
	}
	return append(cmdArgs, url)
}

// launchConfigured launches the trailer using the configured player
func (l *Launcher) launchConfigured(target domain.PlaybackTarget) (domain.PlayerSession, error) {
	args := l.configuredArgs(target)
	l.logger.Info("launching player", "command", l.command, "args", args)

	// On macOS, try to launch GUI apps with 'open -a' if command not in PATH
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath(l.command); err != nil {
			var openFlags []string
			if cfg, ok := players[playerName(l.command)]; ok {
				for _, lp := range cfg.platforms["darwin"] {
					if strings.HasPrefix(lp.path, "open-a:") {
						openFlags = lp.openFlags
						break
					}
				}
			}
			cmdArgs := openArgs(l.command, openFlags, args[:len(args)-1], target.URL)
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command, "args", cmdArgs)
			if err := exec.Command("open", cmdArgs...).Start(); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrNoPlayer, err)
			}
			return detachedSession{}, nil
		}
	}

	session, err := startProcess(l.command, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoPlayer, err)
	}
	return session, nil
}

// detectAndLaunch tries candidate players in order using configured launch paths
func detectAndLaunch(target domain.PlaybackTarget, logger *slog.Logger) (domain.PlayerSession, string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"] // default
	}

	for _, name := range candidates {
		player, exists := players[name]
		if !exists {
			continue
		}

		launchPaths, ok := player.platforms[runtime.GOOS]
		if !ok {
			logger.Debug("player not available on this platform", "player", name, "platform", runtime.GOOS)
			continue
		}

		args := withMute(nil, player.muteFlag, target.Muted)
		for _, lp := range launchPaths {
			if app, isApp := strings.CutPrefix(lp.path, "open-a:"); isApp {
				// Run waits so a missing app is reported
				err := exec.Command("open", openArgs(app, lp.openFlags, args, target.URL)...).Run()
				if err == nil {
					return detachedSession{}, name, nil
				}
				logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
				continue
			}

			if _, err := exec.LookPath(lp.path); err != nil {
				logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
				continue
			}
			session, err := startProcess(lp.path, append(args, target.URL))
			if err == nil {
				return session, name, nil
			}
			logger.Debug("launch failed", "player", name, "path", lp.path, "error", err)
		}
	}

	return nil, "", fmt.Errorf("no candidate players found")
}

// launchDefault opens the embed URL, which carries the audio state,
// using the system default handler
func (l *Launcher) launchDefault(target domain.PlaybackTarget) (domain.PlayerSession, error) {
	url := target.FallbackURL
	if url == "" {
		url = target.URL
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		cmd = exec.Command("xdg-open", url)
	}

	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoPlayer, err)
	}
	go cmd.Wait()
	return detachedSession{}, nil
}

// processSession is a player process owned by marquee
type processSession struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func startProcess(command string, args []string) (*processSession, error) {
	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	s := &processSession{cmd: cmd, done: make(chan struct{})}
	go func() {
		cmd.Wait()
		close(s.done)
	}()
	return s, nil
}

// Stop kills the player if it is still running
func (s *processSession) Stop() error {
	select {
	case <-s.done:
		return nil
	default:
	}
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	<-s.done
	return nil
}

// detachedSession is a player handed off to another process (open -a,
// xdg-open) that cannot be stopped from here
type detachedSession struct{}

func (detachedSession) Stop() error { return nil }
