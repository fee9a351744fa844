package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	soundDir = "sounds/"
	logoDir  = "logo/"

	// TickingSound is the ambient loop played while the timer runs.
	TickingSound = "ticking.wav"
	// AlarmSound is played when a phase completes.
	AlarmSound = "notification.wav"

	LogoActive = "logo_active.png"
	LogoPaused = "logo_paused.png"
)

//go:embed sounds/*.wav
var soundFS embed.FS

//go:embed logo/*.png
var logoFS embed.FS

var soundCache sync.Map
var logoCache sync.Map

// Sound returns a Fyne resource for the given sound file.
func Sound(fileName string) (fyne.Resource, error) {
	return loadResource(soundFS, soundDir+fileName, &soundCache)
}

// MustSound returns a Fyne resource or panics on error.
func MustSound(fileName string) fyne.Resource {
	resource, err := Sound(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
