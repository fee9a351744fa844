package audio

import (
	"bytes"
	"errors"
	"testing"

	"focustimer/resources"

	"github.com/gopxl/beep/v2/wav"
)

func TestEmbeddedCuesDecode(t *testing.T) {
	for _, name := range []string{resources.TickingSound, resources.AlarmSound} {
		streamer, format, err := wav.Decode(bytes.NewReader(resources.MustSound(name).Content()))
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if format.SampleRate != 44100 {
			t.Fatalf("%s: unexpected sample rate %d", name, format.SampleRate)
		}
		if streamer.Len() == 0 {
			t.Fatalf("%s has no samples", name)
		}
		_ = streamer.Close()
	}
}

func TestNewBeepPlayerRejectsBadInput(t *testing.T) {
	if _, err := NewBeepPlayer(nil); !errors.Is(err, ErrUnknownCue) {
		t.Fatalf("expected ErrUnknownCue without sources, got %v", err)
	}
	if _, err := NewBeepPlayer(map[Cue][]byte{CueAlarm: []byte("not a wav")}); err == nil {
		t.Fatalf("expected a decode error")
	}
}
