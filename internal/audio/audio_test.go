package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestTickTone_WAVHeader(t *testing.T) {
	wav := tickTone()

	if len(wav) < 44 {
		t.Fatalf("WAV shorter than its header: %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("Missing RIFF/WAVE magic")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Fatal("Missing fmt/data chunks")
	}

	if format := binary.LittleEndian.Uint16(wav[20:22]); format != 1 {
		t.Errorf("Expected PCM format 1, got %d", format)
	}
	if channels := binary.LittleEndian.Uint16(wav[22:24]); channels != 1 {
		t.Errorf("Expected mono, got %d channels", channels)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != sampleRate {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, rate)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
		t.Errorf("Expected 16-bit samples, got %d", bits)
	}

	expectedSamples := int(tickDuration * sampleRate)
	dataSize := binary.LittleEndian.Uint32(wav[40:44])
	if int(dataSize) != expectedSamples*2 {
		t.Errorf("Expected %d data bytes, got %d", expectedSamples*2, dataSize)
	}
	if len(wav) != 44+int(dataSize) {
		t.Errorf("Header size disagrees with payload: %d vs %d", len(wav), 44+dataSize)
	}
}

func TestGainEnvelope(t *testing.T) {
	if g := gainAt(0); g != floorGain {
		t.Errorf("Expected floor gain at t=0, got %g", g)
	}
	if g := gainAt(attackEnd); math.Abs(g-peakGain) > 1e-9 {
		t.Errorf("Expected peak gain at attack end, got %g", g)
	}
	if g := gainAt(releaseEnd); math.Abs(g-floorGain) > 1e-9 {
		t.Errorf("Expected floor gain at release end, got %g", g)
	}
	if g := gainAt(tickDuration); g != floorGain {
		t.Errorf("Expected floor gain at tail, got %g", g)
	}

	// Attack and release are monotonic.
	prev := gainAt(0.0005)
	for _, ts := range []float64{0.002, 0.005, 0.009} {
		g := gainAt(ts)
		if g <= prev {
			t.Errorf("Attack not rising at t=%g: %g <= %g", ts, g, prev)
		}
		prev = g
	}
	prev = gainAt(0.02)
	for _, ts := range []float64{0.04, 0.06, 0.085} {
		g := gainAt(ts)
		if g >= prev {
			t.Errorf("Release not falling at t=%g: %g >= %g", ts, g, prev)
		}
		prev = g
	}
}

func TestAcquireRelease_Singleton(t *testing.T) {
	first := Acquire()
	second := Acquire()
	if first != second {
		t.Error("Acquire returned distinct devices")
	}

	first.Release()
	deviceMu.Lock()
	stillHeld := device != nil
	deviceMu.Unlock()
	if !stillHeld {
		t.Error("Device torn down while a reference remained")
	}

	second.Release()
	deviceMu.Lock()
	released := device == nil
	deviceMu.Unlock()
	if !released {
		t.Error("Device not torn down after last release")
	}
}

func TestTick_NilAndSilentDeviceAreSafe(t *testing.T) {
	var nilDevice *Device
	nilDevice.Tick()

	silent := &Device{}
	silent.Tick()
}
