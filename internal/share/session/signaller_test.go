package session

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/coachtools/playctl/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

// manualClock drives the signaller loop from the test: ticks and the
// timeout fire only when the test says so.
type manualClock struct {
	now     time.Time
	tick    chan time.Time
	timeout chan time.Time
}

func newManualClock() *manualClock {
	return &manualClock{
		now:     time.UnixMilli(0),
		tick:    make(chan time.Time),
		timeout: make(chan time.Time),
	}
}

type manualTicker struct{ ch chan time.Time }

func (t manualTicker) C() <-chan time.Time { return t.ch }
func (t manualTicker) Stop()               {}

func (c *manualClock) Now() time.Time                 { return c.now }
func (c *manualClock) NewTicker(time.Duration) Ticker { return manualTicker{ch: c.tick} }

func (c *manualClock) After(time.Duration) <-chan time.Time { return c.timeout }

func waitDone(t *testing.T, s *Signaller) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("signaller did not finish (state %s)", s.State())
	}
}

func recvRaw(t *testing.T, port Port) json.RawMessage {
	t.Helper()
	select {
	case raw := <-port.Recv():
		return raw
	case <-time.After(2 * time.Second):
		t.Fatalf("no message on port")
		return nil
	}
}

func TestSenderTransfersOnPeerReady(t *testing.T) {
	testlog.Start(t)
	local, remote := Pipe()
	clock := newManualClock()
	s := NewSender(local, "payload-xyz", DefaultConfig(), clock, zerolog.Nop())
	s.Start()

	// First interval fires: the sender pings.
	clock.tick <- clock.now
	msg, ok := ParseMessage(recvRaw(t, remote))
	if !ok || !msg.Ready {
		t.Fatalf("expected ready ping, got %+v ok=%v", msg, ok)
	}

	// Peer comes up late (its own 600ms schedule) and pings back.
	remote.Post(EncodeReady())
	waitDone(t, s)

	if s.State() != StateTransferred {
		t.Fatalf("expected transferred, got %s", s.State())
	}
	msg, ok = ParseMessage(recvRaw(t, remote))
	if !ok || msg.Ready || msg.Data != "payload-xyz" {
		t.Fatalf("expected payload envelope, got %+v ok=%v", msg, ok)
	}
}

func TestReceiverImportsPayload(t *testing.T) {
	testlog.Start(t)
	local, remote := Pipe()
	clock := newManualClock()
	var got string
	s := NewReceiver(local, func(data string) { got = data }, DefaultConfig(), clock, zerolog.Nop())
	s.Start()

	// The sender's ping arrives first; the receiver keeps signalling.
	remote.Post(EncodeReady())
	// Then the data leg lands.
	remote.Post(EncodeImport("payload-abc"))
	waitDone(t, s)

	if s.State() != StateTransferred {
		t.Fatalf("expected transferred, got %s", s.State())
	}
	if got != "payload-abc" {
		t.Fatalf("handler got %q", got)
	}
}

type trackingTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *trackingTicker) C() <-chan time.Time { return t.ch }
func (t *trackingTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }

type trackingClock struct {
	ticker  *trackingTicker
	timeout chan time.Time
}

func (c *trackingClock) Now() time.Time                       { return time.Now() }
func (c *trackingClock) NewTicker(time.Duration) Ticker       { return c.ticker }
func (c *trackingClock) After(time.Duration) <-chan time.Time { return c.timeout }

func TestReceiverReleasesTickerBeforeImport(t *testing.T) {
	testlog.Start(t)
	local, remote := Pipe()
	clock := &trackingClock{
		ticker:  &trackingTicker{ch: make(chan time.Time), stopped: make(chan struct{})},
		timeout: make(chan time.Time),
	}
	entered := make(chan struct{})
	release := make(chan struct{})
	s := NewReceiver(local, func(string) {
		close(entered)
		<-release
	}, DefaultConfig(), clock, zerolog.Nop())
	s.Start()

	remote.Post(EncodeImport("slow-confirm"))
	<-entered

	// The handler is stuck on a confirm prompt. The periodic task must
	// already be cleared and the transfer recorded.
	select {
	case <-clock.ticker.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker still held while the import handler blocks")
	}
	if s.State() != StateTransferred {
		t.Fatalf("expected transferred, got %s", s.State())
	}
	close(release)
	waitDone(t, s)
}

func TestHandshakeLiveness(t *testing.T) {
	testlog.Start(t)
	// Real clock, scaled down: sender pings every 5ms with a 500ms
	// give-up; the receiver only starts 6ms later, after the sender's
	// first ping is already gone. Both sides signalling independently
	// must still complete the transfer.
	cfg := Config{PingInterval: 5 * time.Millisecond, Timeout: 500 * time.Millisecond}
	senderEnd, receiverEnd := Pipe()

	sender := NewSender(senderEnd, "live-payload", cfg, RealClock(), zerolog.Nop())
	sender.Start()

	time.Sleep(6 * time.Millisecond)
	done := make(chan string, 1)
	receiver := NewReceiver(receiverEnd, func(data string) { done <- data }, cfg, RealClock(), zerolog.Nop())
	receiver.Start()

	select {
	case data := <-done:
		if data != "live-payload" {
			t.Fatalf("transferred %q", data)
		}
	case <-time.After(time.Second):
		t.Fatalf("transfer did not complete: sender=%s receiver=%s",
			sender.State(), receiver.State())
	}
	waitDone(t, sender)
	waitDone(t, receiver)
	if sender.State() != StateTransferred || receiver.State() != StateTransferred {
		t.Fatalf("states: sender=%s receiver=%s", sender.State(), receiver.State())
	}
}

func TestSignallerTimeoutIsSilent(t *testing.T) {
	testlog.Start(t)
	local, _ := Pipe()
	clock := newManualClock()
	s := NewSender(local, "payload", DefaultConfig(), clock, zerolog.Nop())
	s.Start()

	clock.timeout <- clock.now
	waitDone(t, s)
	if s.State() != StateTimedOut {
		t.Fatalf("expected timed_out, got %s", s.State())
	}
}

func TestSignallerStopIdempotent(t *testing.T) {
	testlog.Start(t)
	local, _ := Pipe()
	s := NewSender(local, "payload", DefaultConfig(), newManualClock(), zerolog.Nop())
	s.Start()
	s.Stop()
	s.Stop()
	waitDone(t, s)
}

func TestUnknownShapesIgnored(t *testing.T) {
	testlog.Start(t)
	cases := []json.RawMessage{
		json.RawMessage(`"SOME_OTHER_SIGNAL"`),
		json.RawMessage(`{"type":"OTHER","data":"x"}`),
		json.RawMessage(`{"type":"IMPORT_PLAYBOOK"}`),
		json.RawMessage(`{"type":"IMPORT_PLAYBOOK","data":""}`),
		json.RawMessage(`42`),
		json.RawMessage(`not json at all`),
		json.RawMessage(``),
	}
	for _, raw := range cases {
		if _, ok := ParseMessage(raw); ok {
			t.Fatalf("shape %q should be ignored", raw)
		}
	}
	if msg, ok := ParseMessage(EncodeReady()); !ok || !msg.Ready {
		t.Fatalf("ready ping did not parse")
	}
	if msg, ok := ParseMessage(EncodeImport("d")); !ok || msg.Data != "d" {
		t.Fatalf("import envelope did not parse")
	}
}

func TestSignallerIgnoresForeignTrafficWhileSignalling(t *testing.T) {
	testlog.Start(t)
	local, remote := Pipe()
	clock := newManualClock()
	s := NewSender(local, "payload", DefaultConfig(), clock, zerolog.Nop())
	s.Start()

	remote.Post(json.RawMessage(`{"type":"SOMETHING_ELSE"}`))
	remote.Post(json.RawMessage(`"NOT_THE_SIGNAL"`))
	remote.Post(EncodeReady())
	waitDone(t, s)
	if s.State() != StateTransferred {
		t.Fatalf("expected transferred after foreign traffic, got %s", s.State())
	}
}
