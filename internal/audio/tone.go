package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	tickFrequency = 880.0
	tickDuration  = 0.1 // seconds
	sampleRate    = 44100

	// Gain envelope: near-silence ramping up to peak over the attack, then
	// decaying back down so the tick has no click at either edge.
	floorGain  = 0.0001
	peakGain   = 0.2
	attackEnd  = 0.01 // seconds
	releaseEnd = 0.09 // seconds
)

// tickTone synthesizes the confirmation tick as a 16-bit mono PCM WAV: a
// short 880 Hz sine with an exponential attack and release.
func tickTone() []byte {
	samples := int(tickDuration * sampleRate)
	pcm := make([]int16, samples)
	for i := range pcm {
		t := float64(i) / sampleRate
		v := math.Sin(2 * math.Pi * tickFrequency * t)
		pcm[i] = int16(v * gainAt(t) * math.MaxInt16)
	}
	return wrapWAV(pcm)
}

// gainAt follows the exponential ramps of the envelope: floor to peak over
// the attack window, peak back to floor over the release window.
func gainAt(t float64) float64 {
	switch {
	case t <= 0:
		return floorGain
	case t < attackEnd:
		return expRamp(floorGain, peakGain, t/attackEnd)
	case t < releaseEnd:
		return expRamp(peakGain, floorGain, (t-attackEnd)/(releaseEnd-attackEnd))
	default:
		return floorGain
	}
}

// expRamp interpolates exponentially from v0 to v1 as frac goes 0 to 1.
func expRamp(v0, v1, frac float64) float64 {
	return v0 * math.Pow(v1/v0, frac)
}

// wrapWAV frames 16-bit mono PCM samples in a canonical RIFF/WAVE header.
func wrapWAV(pcm []int16) []byte {
	dataSize := uint32(len(pcm) * 2)
	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))            // chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))             // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))             // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))    // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))  // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))             // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))            // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	binary.Write(&buf, binary.LittleEndian, pcm)

	return buf.Bytes()
}
