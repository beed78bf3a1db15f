package sfx

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// FootstepSamples synthesizes a short mono footstep: two damped low thumps with a
// little noise, about 0.3 seconds long.
func FootstepSamples(sampleRate int) []int16 {
	n := sampleRate * 3 / 10
	out := make([]int16, n)
	seed := uint32(0x9E3779B9)

	for i := range out {
		t := float64(i) / float64(sampleRate)
		var v float64
		for _, onset := range []float64{0, 0.14} {
			dt := t - onset
			if dt < 0 {
				continue
			}
			env := math.Exp(-dt * 38)
			seed ^= seed << 13
			seed ^= seed >> 17
			seed ^= seed << 5
			noise := float64(seed)/float64(math.MaxUint32)*2 - 1
			v += env * (0.7*math.Sin(2*math.Pi*90*dt) + 0.3*noise)
		}
		out[i] = int16(math.Max(-1, math.Min(1, v*0.6)) * math.MaxInt16)
	}
	return out
}

// WriteWAV encodes mono 16-bit PCM as a RIFF/WAVE stream.
func WriteWAV(w io.Writer, sampleRate int, samples []int16) error {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := uint32(len(samples) * 2)
	blockAlign := uint16(channels * bitsPerSample / 8)

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		36 + dataSize,
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(channels),
		uint32(sampleRate),
		uint32(sampleRate) * uint32(blockAlign),
		blockAlign,
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}
