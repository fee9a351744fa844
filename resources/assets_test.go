package resources

import "testing"

func TestSoundsAreEmbedded(t *testing.T) {
	for _, name := range []string{TickingSound, AlarmSound} {
		resource, err := Sound(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(resource.Content()) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestLogoIsCached(t *testing.T) {
	first := MustLogo(LogoActive)
	second := MustLogo(LogoActive)
	if first != second {
		t.Fatalf("expected the cached resource to be reused")
	}
}

func TestTrayLogosAreEmbedded(t *testing.T) {
	for _, name := range []string{LogoActive, LogoPaused} {
		if _, err := Logo(name); err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
	}
}

func TestMissingResource(t *testing.T) {
	if _, err := Sound("missing.wav"); err == nil {
		t.Fatalf("expected an error for a missing sound")
	}
}
