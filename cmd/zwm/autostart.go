package main

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// runAutostart runs autostart_blocking.sh to completion and then
// autostart.sh in the background. Scripts live in $XDG_DATA_HOME/zwm,
// ~/.local/share/zwm or, if neither directory exists, ~/.zwm.
func runAutostart() {
	dir := autostartDir()
	if dir == "" {
		return
	}

	blocking := filepath.Join(dir, "autostart_blocking.sh")
	if _, err := os.Stat(blocking); err == nil {
		if err := exec.Command(blocking).Run(); err != nil {
			slog.Warn("Autostart script failed", "script", blocking, "error", err)
		}
	}

	background := filepath.Join(dir, "autostart.sh")
	if _, err := os.Stat(background); err == nil {
		cmd := exec.Command(background)
		if err := cmd.Start(); err != nil {
			slog.Warn("Autostart script failed", "script", background, "error", err)
			return
		}
		go func() { _ = cmd.Wait() }()
	}
}

func autostartDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	dir := os.Getenv("XDG_DATA_HOME")
	if dir != "" {
		dir = filepath.Join(dir, "zwm")
	} else {
		dir = filepath.Join(home, ".local", "share", "zwm")
	}
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return filepath.Join(home, ".zwm")
}
