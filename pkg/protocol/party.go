package protocol

import "fmt"

// LocalPartyID is a basic implementation of PartyID.
type LocalPartyID struct {
	IDStr   string
	Name    string
	KeyData []byte
}

// NewPartyID returns a PartyID whose moniker equals its id.
func NewPartyID(id string) *LocalPartyID {
	return &LocalPartyID{IDStr: id, Name: id, KeyData: []byte(id)}
}

func (p *LocalPartyID) ID() string      { return p.IDStr }
func (p *LocalPartyID) Moniker() string { return p.Name }
func (p *LocalPartyID) Key() []byte     { return p.KeyData }

// Validate checks that the local party is part of a duplicate-free party set
// of the expected size.
func (params *Parameters) Validate(n int) error {
	if params == nil || params.PartyID == nil {
		return fmt.Errorf("%w: missing local party", ErrInvalidParties)
	}
	if len(params.Parties) != n {
		return fmt.Errorf("%w: expected %d parties, got %d", ErrInvalidParties, n, len(params.Parties))
	}

	seen := make(map[string]bool, n)
	self := false
	for _, p := range params.Parties {
		if p == nil || seen[p.ID()] {
			return fmt.Errorf("%w: duplicate or nil party", ErrInvalidParties)
		}
		seen[p.ID()] = true
		self = self || p.ID() == params.PartyID.ID()
	}
	if !self {
		return fmt.Errorf("%w: local party %s not in party set", ErrInvalidParties, params.PartyID.ID())
	}
	return nil
}
