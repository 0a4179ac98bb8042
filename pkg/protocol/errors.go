package protocol

import (
	"errors"
	"fmt"
)

// Blame is a protocol failure attributed to one peer, so that callers can
// abort the session and exclude that party from the next one.
type Blame struct {
	PartyID PartyID
	Round   uint32
	Reason  string
	Err     error
}

func (b *Blame) Error() string {
	msg := fmt.Sprintf("party %s misbehaved in round %d: %s", b.PartyID.ID(), b.Round, b.Reason)
	if b.Err != nil {
		msg += ": " + b.Err.Error()
	}
	return msg
}

func (b *Blame) Unwrap() error {
	return b.Err
}

// NewBlame returns a Blame for party in the given round. err may be nil.
func NewBlame(party PartyID, round uint32, reason string, err error) *Blame {
	return &Blame{PartyID: party, Round: round, Reason: reason, Err: err}
}

// Blamed returns the party blamed anywhere in err's chain.
func Blamed(err error) (PartyID, bool) {
	var b *Blame
	if !errors.As(err, &b) {
		return nil, false
	}
	return b.PartyID, true
}
