package protocol

import "fmt"

// Route delivers one batch of outgoing messages in memory. Every party
// receives the broadcasts of the others and the direct messages addressed to
// it. It returns the updated machines and the messages they emitted.
//
// Route is meant for tests, examples and single-process tools; networked
// deployments deliver messages themselves.
func Route(parties []PartyID, sms []StateMachine, outMsgs [][]Message) ([]StateMachine, [][]Message, error) {
	// Collect all messages
	var allMsgs []Message
	for _, msgs := range outMsgs {
		allMsgs = append(allMsgs, msgs...)
	}
	newOutMsgs := make([][]Message, len(sms))

	// Deliver messages to each party
	for i := range sms {
		if sms[i] == nil {
			continue
		}

		for _, msg := range allMsgs {
			// Skip own messages
			if msg.From().ID() == parties[i].ID() {
				continue
			}
			if !msg.IsBroadcast() && !addressedTo(msg, parties[i]) {
				continue
			}

			next, newOut, err := sms[i].Update(msg)
			if err != nil {
				return nil, nil, fmt.Errorf("party %s: %w", parties[i].ID(), err)
			}
			sms[i] = next
			newOutMsgs[i] = append(newOutMsgs[i], newOut...)
		}
	}
	return sms, newOutMsgs, nil
}

// RunLocal drives sms until every machine has a result or no messages are
// left in flight.
func RunLocal(parties []PartyID, sms []StateMachine, outMsgs [][]Message) ([]interface{}, error) {
	for {
		pending := 0
		for _, msgs := range outMsgs {
			pending += len(msgs)
		}
		if pending == 0 {
			break
		}

		var err error
		sms, outMsgs, err = Route(parties, sms, outMsgs)
		if err != nil {
			return nil, err
		}
	}

	results := make([]interface{}, len(sms))
	for i, sm := range sms {
		results[i] = sm.Result()
		if results[i] == nil {
			return nil, fmt.Errorf("party %s did not complete: %s", parties[i].ID(), sm.Details())
		}
	}
	return results, nil
}

func addressedTo(msg Message, party PartyID) bool {
	for _, dest := range msg.To() {
		if dest.ID() == party.ID() {
			return true
		}
	}
	return false
}
