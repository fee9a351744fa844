package platform

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

func testAppName(t *testing.T) string {
	return fmt.Sprintf("focustimer-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("FocusTimer")
	if first != portFromName("FocusTimer") {
		t.Fatalf("port must be deterministic")
	}
	if first < 20000 || first > 39999 {
		t.Fatalf("port %d out of range", first)
	}
}

func TestSecondAcquireFails(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestActivateRunningCallsOnShow(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}

	shown := make(chan struct{}, 1)
	served := make(chan struct{})
	go func() {
		guard.Serve(func() { shown <- struct{}{} })
		close(served)
	}()

	if err := ActivateRunning(name); err != nil {
		t.Fatalf("activate: %v", err)
	}
	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatalf("running instance was not asked to show")
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("second release should be a no-op, got %v", err)
	}
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return after release")
	}
}

type failingListener struct {
	accepts atomic.Int64
}

func (listener *failingListener) Accept() (net.Conn, error) {
	listener.accepts.Add(1)
	return nil, errors.New("too many open files")
}

func (listener *failingListener) Close() error   { return nil }
func (listener *failingListener) Addr() net.Addr { return &net.TCPAddr{} }

func TestServeBacksOffOnAcceptErrors(t *testing.T) {
	listener := &failingListener{}
	guard := &InstanceGuard{listener: listener, done: make(chan struct{})}

	served := make(chan struct{})
	go func() {
		guard.Serve(nil)
		close(served)
	}()

	time.Sleep(200 * time.Millisecond)
	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return after release")
	}

	if got := listener.accepts.Load(); got > 20 {
		t.Fatalf("accept retried %d times in 200ms, expected a backoff", got)
	}
}
