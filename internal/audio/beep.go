package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const resampleQuality = 4

// BeepPlayer plays WAV cues through the system speaker.
type BeepPlayer struct {
	mu      sync.Mutex
	format  beep.Format
	buffers map[Cue]*beep.Buffer
	loop    *beep.Ctrl
	loopVol *effects.Volume
	volume  int
}

// NewBeepPlayer decodes the WAV sources and initialises the speaker with the
// format of the first cue. Every other cue is resampled to that rate.
func NewBeepPlayer(sources map[Cue][]byte) (*BeepPlayer, error) {
	player := &BeepPlayer{
		buffers: make(map[Cue]*beep.Buffer, len(sources)),
		volume:  DefaultVolume,
	}

	initialised := false
	for _, cue := range []Cue{CueTicking, CueAlarm} {
		data, ok := sources[cue]
		if !ok {
			continue
		}
		streamer, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode cue %s: %w", cue, err)
		}
		if !initialised {
			player.format = format
			initialised = true
		}

		var source beep.Streamer = streamer
		if format.SampleRate != player.format.SampleRate {
			source = beep.Resample(resampleQuality, format.SampleRate, player.format.SampleRate, streamer)
		}
		buffer := beep.NewBuffer(player.format)
		buffer.Append(source)
		_ = streamer.Close()
		player.buffers[cue] = buffer
	}
	if !initialised {
		return nil, fmt.Errorf("init audio: %w", ErrUnknownCue)
	}

	if err := speaker.Init(player.format.SampleRate, player.format.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return player, nil
}

// Play fires a cue once.
func (player *BeepPlayer) Play(cue Cue) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	buffer, ok := player.buffers[cue]
	if !ok {
		return fmt.Errorf("play %s: %w", cue, ErrUnknownCue)
	}
	volume := &effects.Volume{Streamer: buffer.Streamer(0, buffer.Len()), Base: 2}
	applyVolume(volume, player.volume)
	speaker.Play(volume)
	return nil
}

// Loop starts or stops an endless repetition of a cue.
func (player *BeepPlayer) Loop(cue Cue, playing bool) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if !playing {
		if player.loop != nil {
			speaker.Lock()
			player.loop.Streamer = nil
			speaker.Unlock()
			player.loop = nil
			player.loopVol = nil
		}
		return nil
	}
	if player.loop != nil {
		return nil
	}

	buffer, ok := player.buffers[cue]
	if !ok {
		return fmt.Errorf("loop %s: %w", cue, ErrUnknownCue)
	}
	player.loop = &beep.Ctrl{Streamer: beep.Loop(-1, buffer.Streamer(0, buffer.Len()))}
	player.loopVol = &effects.Volume{Streamer: player.loop, Base: 2}
	applyVolume(player.loopVol, player.volume)
	speaker.Play(player.loopVol)
	return nil
}

// SetVolume changes the level of the running loop in place and of later cues.
func (player *BeepPlayer) SetVolume(percent int) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	player.volume = percent
	if player.loopVol != nil {
		speaker.Lock()
		applyVolume(player.loopVol, percent)
		speaker.Unlock()
	}
	return nil
}

// Close stops every cue.
func (player *BeepPlayer) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	speaker.Clear()
	player.loop = nil
	player.loopVol = nil
}

// applyVolume maps a 0..100 percentage onto a base-2 gain.
func applyVolume(volume *effects.Volume, percent int) {
	if percent <= 0 {
		volume.Silent = true
		volume.Volume = 0
		return
	}
	if percent > 100 {
		percent = 100
	}
	volume.Silent = false
	volume.Volume = math.Log2(float64(percent) / 100)
}
