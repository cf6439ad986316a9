package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

type soundShape struct {
	duration  float64
	startFreq float64
	endFreq   float64
	decay     float64
	noise     float64
	gain      float64
}

var soundShapes = map[string]soundShape{
	"fire": {duration: 0.12, startFreq: 880, endFreq: 220, decay: 28, noise: 0.15, gain: 0.35},
	"hit":  {duration: 0.08, startFreq: 180, endFreq: 90, decay: 40, noise: 0.6, gain: 0.3},
}

var (
	audioOnce    sync.Once
	audioContext *audio.Context

	pcmMu    sync.Mutex
	pcmCache = map[string][]byte{}
)

// AudioContext creates the shared audio context on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// SoundNames lists the sounds Sound can synthesize.
func SoundNames() []string {
	return []string{"fire", "hit"}
}

// Sound returns a named effect as 16-bit little-endian stereo PCM at
// SampleRate, the format audio.Context.NewPlayerFromBytes expects.
func Sound(name string) ([]byte, error) {
	pcmMu.Lock()
	defer pcmMu.Unlock()

	if b, ok := pcmCache[name]; ok {
		return b, nil
	}
	shape, ok := soundShapes[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown sound %q", name)
	}
	b := synthesize(shape)
	pcmCache[name] = b
	return b, nil
}

// LoadAudioPlayer synthesizes a sound and wraps it in a player.
func LoadAudioPlayer(name string) (*audio.Player, error) {
	b, err := Sound(name)
	if err != nil {
		return nil, err
	}
	return AudioContext().NewPlayerFromBytes(b), nil
}

// synthesize renders a square wave sweeping from startFreq to endFreq with
// an exponential envelope and a little deterministic noise.
func synthesize(s soundShape) []byte {
	n := int(s.duration * SampleRate)
	out := make([]byte, n*4)

	phase := 0.0
	var lfsr uint32 = 0xACE1
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		progress := float64(i) / float64(n)
		freq := s.startFreq + (s.endFreq-s.startFreq)*progress
		phase += freq / SampleRate
		phase -= math.Floor(phase)

		square := 1.0
		if phase >= 0.5 {
			square = -1
		}

		lfsr ^= lfsr << 13
		lfsr ^= lfsr >> 17
		lfsr ^= lfsr << 5
		noise := float64(lfsr)/float64(math.MaxUint32)*2 - 1

		v := (square*(1-s.noise) + noise*s.noise) * math.Exp(-s.decay*t) * s.gain
		sample := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)

		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}
