package audio

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
)

// Device plays the confirmation tick through whatever command-line player
// the host provides. Playback is fire-and-forget: a host with no player, or
// a player that fails, degrades to silence without surfacing errors.
type Device struct {
	player  string
	wavPath string
	playing atomic.Bool
}

var (
	deviceMu sync.Mutex
	device   *Device
	refs     int
)

// Acquire returns the process-wide audio device, creating it on first use.
// Every Acquire must be paired with a Release.
func Acquire() *Device {
	deviceMu.Lock()
	defer deviceMu.Unlock()
	if device == nil {
		device = newDevice()
	}
	refs++
	return device
}

// Release drops one reference to the shared device. The last release
// removes the synthesized tone file.
func (d *Device) Release() {
	deviceMu.Lock()
	defer deviceMu.Unlock()
	if refs == 0 {
		return
	}
	refs--
	if refs == 0 && device != nil {
		if device.wavPath != "" {
			os.Remove(device.wavPath)
		}
		device = nil
	}
}

func newDevice() *Device {
	d := &Device{player: resolvePlayer()}
	if d.player == "" {
		return d
	}

	path := filepath.Join(os.TempDir(), "reciteflow-tick.wav")
	if err := os.WriteFile(path, tickTone(), 0o644); err != nil {
		d.player = ""
		return d
	}
	d.wavPath = path
	return d
}

// resolvePlayer finds a WAV-capable player on the current platform.
func resolvePlayer() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"afplay"}
	case "windows":
		candidates = []string{"powershell"}
	default:
		candidates = []string{"aplay", "paplay", "play"}
	}
	for _, candidate := range candidates {
		if p, err := exec.LookPath(candidate); err == nil {
			return p
		}
	}
	return ""
}

// Tick plays the confirmation tone asynchronously. Overlapping calls while
// a tone is still sounding are dropped rather than queued.
func (d *Device) Tick() {
	if d == nil || d.player == "" {
		return
	}
	if !d.playing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer d.playing.Store(false)
		cmd := exec.Command(d.player, d.commandArgs()...)
		cmd.Run()
	}()
}

func (d *Device) commandArgs() []string {
	if runtime.GOOS == "windows" {
		return []string{"-c", "(New-Object Media.SoundPlayer '" + d.wavPath + "').PlaySync()"}
	}
	return []string{d.wavPath}
}
