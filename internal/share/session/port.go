package session

import "encoding/json"

// Port is one end of the duplex messaging channel between two browsing
// contexts. Delivery is not guaranteed; messages are self-contained and
// handled idempotently by the receiver.
type Port interface {
	Post(raw json.RawMessage)
	Recv() <-chan json.RawMessage
}

type pipePort struct {
	out chan<- json.RawMessage
	in  <-chan json.RawMessage
}

func (p pipePort) Post(raw json.RawMessage) {
	select {
	case p.out <- raw:
	default:
		// Peer not draining; the message is lost, like a post to a
		// context that has navigated away.
	}
}

func (p pipePort) Recv() <-chan json.RawMessage { return p.in }

// Pipe returns two connected in-process ports. Tests and same-process
// transfers use it in place of real cross-context messaging.
func Pipe() (Port, Port) {
	ab := make(chan json.RawMessage, 32)
	ba := make(chan json.RawMessage, 32)
	return pipePort{out: ab, in: ba}, pipePort{out: ba, in: ab}
}
