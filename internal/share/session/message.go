package session

import (
	"bytes"
	"encoding/json"
)

// The entire wire vocabulary of the messaging channel: a bare string ping
// and a typed payload envelope. Any other shape is ignored, never an error.
const (
	ReadySignal        = "HANDSHAKE_READY"
	TypeImportPlaybook = "IMPORT_PLAYBOOK"
)

type envelope struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Message is one decoded channel message.
type Message struct {
	Ready bool
	Data  string // encoded playbook payload, set when Ready is false
}

// EncodeReady returns the raw form of the readiness ping.
func EncodeReady() json.RawMessage {
	raw, _ := json.Marshal(ReadySignal)
	return raw
}

// EncodeImport returns the raw form of the payload envelope.
func EncodeImport(data string) json.RawMessage {
	raw, _ := json.Marshal(envelope{Type: TypeImportPlaybook, Data: data})
	return raw
}

// ParseMessage decodes raw into one of the two known shapes. ok is false
// for anything else, including well-formed JSON of a foreign shape.
func ParseMessage(raw json.RawMessage) (Message, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Message{}, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil || s != ReadySignal {
			return Message{}, false
		}
		return Message{Ready: true}, true
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Message{}, false
	}
	if env.Type != TypeImportPlaybook || env.Data == "" {
		return Message{}, false
	}
	return Message{Data: env.Data}, true
}
