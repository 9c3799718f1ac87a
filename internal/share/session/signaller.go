package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State is the signaller lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateSignalling
	StateAcknowledged
	StateTransferred
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSignalling:
		return "signalling"
	case StateAcknowledged:
		return "acknowledged"
	case StateTransferred:
		return "transferred"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Config defines handshake timing.
type Config struct {
	PingInterval time.Duration
	Timeout      time.Duration
}

// DefaultConfig returns the canonical handshake timing: ping every 500ms,
// give up after 10s.
func DefaultConfig() Config {
	return Config{
		PingInterval: 500 * time.Millisecond,
		Timeout:      10 * time.Second,
	}
}

// Signaller runs one end of the handshake. A sender carries the encoded
// payload and posts it on the first observed peer ping; a receiver hands
// an observed payload to its handler. Both ping readiness on the
// configured interval until acknowledged or timed out.
type Signaller struct {
	cfg      Config
	clock    Clock
	port     Port
	payload  string            // sender side only
	onImport func(data string) // receiver side only
	log      zerolog.Logger

	state    atomic.Int32
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSender builds the payload-carrying end of the handshake.
func NewSender(port Port, payload string, cfg Config, clock Clock, log zerolog.Logger) *Signaller {
	return newSignaller(port, payload, nil, cfg, clock, log)
}

// NewReceiver builds the importing end of the handshake. onImport runs on
// the signaller goroutine once the payload arrives and the periodic task
// is cleared, so a handler blocked on user input never holds the ticker.
func NewReceiver(port Port, onImport func(data string), cfg Config, clock Clock, log zerolog.Logger) *Signaller {
	return newSignaller(port, "", onImport, cfg, clock, log)
}

func newSignaller(port Port, payload string, onImport func(string), cfg Config, clock Clock, log zerolog.Logger) *Signaller {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultConfig().PingInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Signaller{
		cfg:      cfg,
		clock:    clock,
		port:     port,
		payload:  payload,
		onImport: onImport,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// State returns the current lifecycle position.
func (s *Signaller) State() State {
	return State(s.state.Load())
}

// Done is closed when the signaller goroutine has exited and its periodic
// task is cleared.
func (s *Signaller) Done() <-chan struct{} {
	return s.done
}

// Start launches the signalling loop. It must be balanced by Stop, a
// transfer, or the timeout; all three clear the periodic task.
func (s *Signaller) Start() {
	s.state.Store(int32(StateSignalling))
	go s.run()
}

// Stop cancels signalling. Safe to call repeatedly and after completion.
func (s *Signaller) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Signaller) run() {
	ticker := s.clock.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	defer close(s.done)
	deadline := s.clock.After(s.cfg.Timeout)

	for {
		select {
		case <-ticker.C():
			s.port.Post(EncodeReady())
		case raw := <-s.port.Recv():
			msg, ok := ParseMessage(raw)
			if !ok {
				continue
			}
			if msg.Ready {
				if s.handleReady() {
					return
				}
				continue
			}
			if s.onImport == nil {
				// A sender re-observing a payload envelope (echo) is
				// ignored.
				continue
			}
			// Release the periodic task before the handler runs; the
			// handler may block on a confirm prompt and must not hold
			// the ticker.
			ticker.Stop()
			s.state.Store(int32(StateTransferred))
			s.onImport(msg.Data)
			s.log.Debug().Msg("handshake payload received")
			return
		case <-deadline:
			// Silent failure: the peer never loaded or never
			// acknowledged. The sending artifact stays valid.
			s.state.Store(int32(StateTimedOut))
			s.log.Debug().Dur("timeout", s.cfg.Timeout).Msg("handshake timed out")
			return
		case <-s.stop:
			return
		}
	}
}

// handleReady processes a peer ping and reports whether the loop is done.
func (s *Signaller) handleReady() bool {
	if s.payload != "" {
		// First observed peer ping wins: deliver the data leg.
		s.state.Store(int32(StateAcknowledged))
		s.port.Post(EncodeImport(s.payload))
		s.state.Store(int32(StateTransferred))
		s.log.Debug().Msg("handshake acknowledged, payload posted")
		return true
	}
	// Receiver: peer is live, keep signalling until the payload
	// arrives or the deadline passes.
	s.state.Store(int32(StateAcknowledged))
	return false
}
