package share

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coachtools/playctl/internal/codec"
	"github.com/coachtools/playctl/internal/config"
	"github.com/coachtools/playctl/internal/playbook"
	"github.com/coachtools/playctl/internal/share/session"
	"github.com/coachtools/playctl/internal/store"
	"github.com/coachtools/playctl/internal/wire"
)

var ErrNotPlaybook = errors.New("share: payload is not a playbook document")

// State is the import flow position. Terminal states return to Idle once
// the attempt resolves; State is observable mid-flight from the confirmer.
type State int

const (
	StateIdle State = iota
	StateAwaitingUserConfirm
	StateImporting
	StateImported
	StateImportFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingUserConfirm:
		return "awaiting_user_confirm"
	case StateImporting:
		return "importing"
	case StateImported:
		return "imported"
	case StateImportFailed:
		return "import_failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Confirmer asks the user whether an incoming playbook should be added.
// The prompt is modal for the payload being confirmed, but other scheduled
// work (handshake pings) keeps running.
type Confirmer interface {
	Confirm(name string, plays int) (bool, error)
}

// Service is the share transport orchestrator.
type Service struct {
	cfg     config.Config
	codec   codec.Codec
	store   *store.Store
	confirm Confirmer
	clock   session.Clock
	log     zerolog.Logger

	mu    sync.Mutex
	state State
	seen  map[string]struct{}
}

// New builds a service over the given store. confirm may not be nil; the
// import path always prompts before touching the collection.
func New(cfg config.Config, st *store.Store, confirm Confirmer, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		codec:   codec.Codec{Scale: cfg.Field.ScalePx},
		store:   st,
		confirm: confirm,
		clock:   session.RealClock(),
		log:     log,
		state:   StateIdle,
		seen:    make(map[string]struct{}),
	}
}

// WithClock substitutes the handshake clock.
func (s *Service) WithClock(clock session.Clock) *Service {
	s.clock = clock
	return s
}

// State returns the current import flow position.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Export produces the encoded share payload for pb.
func (s *Service) Export(pb *playbook.Playbook) (string, error) {
	return wire.Encode(s.codec.Minify(pb))
}

// ShareURL produces a direct link that imports pb when the app loads it.
func (s *Service) ShareURL(pb *playbook.Playbook) (string, error) {
	payload, err := s.Export(pb)
	if err != nil {
		return "", err
	}
	base := s.cfg.AppURL
	if strings.Contains(base, "?") {
		return base + "&share=" + payload, nil
	}
	return base + "?share=" + payload, nil
}

// ImportFromURL inspects rawURL for a share payload and runs the import
// flow on it. The query parameter wins over the fragment form. It returns
// false with a nil error when there is no payload, the payload was already
// handled this session, or the user declined.
func (s *Service) ImportFromURL(rawURL string) (bool, error) {
	payload, ok := ParseShareParam(rawURL)
	if !ok {
		return false, nil
	}
	imported, err := s.ImportPayload(payload)
	if err != nil {
		return false, err
	}
	if imported {
		// The caller cleans the URL back to its bare path after a
		// successful import; the remembered fingerprints go with it
		// so a later navigation to the same link prompts again.
		s.ClearURL()
	}
	return imported, nil
}

// ImportPayload runs the decode-and-confirm flow on one encoded payload.
// Re-receiving a payload already handled this session is suppressed
// without re-prompting, whatever channel it arrived on.
func (s *Service) ImportPayload(payload string) (bool, error) {
	fp := Fingerprint(payload)

	pb, err := s.DecodePayload(payload)
	if err != nil {
		s.setState(StateImportFailed)
		s.setState(StateIdle)
		return false, err
	}

	s.mu.Lock()
	if _, dup := s.seen[fp]; dup {
		s.mu.Unlock()
		s.log.Debug().Str("fingerprint", fp).Msg("duplicate share payload suppressed")
		return false, nil
	}
	// Remember before prompting: a second delivery of the same payload
	// while the prompt is open must not stack a second prompt.
	s.seen[fp] = struct{}{}
	s.mu.Unlock()

	s.setState(StateAwaitingUserConfirm)
	ok, err := s.confirm.Confirm(pb.Name, len(pb.Plays))
	if err != nil {
		s.setState(StateImportFailed)
		s.setState(StateIdle)
		return false, err
	}
	if !ok {
		s.setState(StateCancelled)
		s.setState(StateIdle)
		s.log.Info().Str("playbook", pb.Name).Msg("import declined")
		return false, nil
	}

	s.setState(StateImporting)
	if err := s.store.Put(pb); err != nil {
		s.setState(StateImportFailed)
		s.setState(StateIdle)
		return false, err
	}
	s.setState(StateImported)
	s.setState(StateIdle)
	s.log.Info().Str("playbook", pb.Name).Int("plays", len(pb.Plays)).Msg("playbook imported")
	return true, nil
}

// DecodePayload decodes an encoded share payload into a fully materialized
// playbook without touching the store. Both the minified positional form
// and the legacy full-fidelity JSON document are accepted.
func (s *Service) DecodePayload(payload string) (*playbook.Playbook, error) {
	value, err := wire.Decode(payload)
	if err != nil {
		return nil, err
	}
	return s.materialize(value, s.clock.Now())
}

// materialize turns a decoded JSON value into a playbook. Minified tuples
// go through the codec; anything else must already be an expanded document.
func (s *Service) materialize(value any, now time.Time) (*playbook.Playbook, error) {
	if pb, handled, err := s.codec.Expand(value, now); handled {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wire.ErrDecode, err)
		}
		return pb, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: neither minified nor document form", ErrNotPlaybook)
	}
	text, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPlaybook, err)
	}
	var pb playbook.Playbook
	if err := json.Unmarshal(text, &pb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPlaybook, err)
	}
	if strings.TrimSpace(pb.ID) == "" {
		return nil, fmt.Errorf("%w: document missing id", ErrNotPlaybook)
	}
	ms := now.UnixMilli()
	pb.CreatedAt = ms
	pb.UpdatedAt = ms
	return &pb, nil
}

// ClearURL forgets the session's payload fingerprints. It models the URL
// being cleaned back to a bare path after a successful import: the same
// share string navigated to again later prompts again.
func (s *Service) ClearURL() {
	s.mu.Lock()
	s.seen = make(map[string]struct{})
	s.mu.Unlock()
}

// Sender starts the sending end of a handshake over port, carrying pb's
// encoded payload. The caller owns the returned signaller's lifecycle.
func (s *Service) Sender(port session.Port, pb *playbook.Playbook) (*session.Signaller, error) {
	payload, err := s.Export(pb)
	if err != nil {
		return nil, err
	}
	sig := session.NewSender(port, payload, s.handshakeConfig(), s.clock, s.log)
	sig.Start()
	return sig, nil
}

// Receiver starts the importing end of a handshake over port. Payloads it
// observes run the same decode-and-confirm flow as URL imports, with the
// same duplicate suppression.
func (s *Service) Receiver(port session.Port) *session.Signaller {
	sig := session.NewReceiver(port, func(data string) {
		if _, err := s.ImportPayload(data); err != nil {
			s.log.Warn().Err(err).Msg("handshake payload rejected")
		}
	}, s.handshakeConfig(), s.clock, s.log)
	sig.Start()
	return sig
}

func (s *Service) handshakeConfig() session.Config {
	return session.Config{
		PingInterval: s.cfg.Handshake.PingInterval(),
		Timeout:      s.cfg.Handshake.Timeout(),
	}
}
