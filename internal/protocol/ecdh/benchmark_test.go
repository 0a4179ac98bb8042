package ecdh

import (
	"testing"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

func benchmarkAgreement(b *testing.B, curve string) {
	params := newParams(curve)
	parties := params[0].Parties

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sms := make([]protocol.StateMachine, len(params))
		out := make([][]protocol.Message, len(params))
		for j, p := range params {
			var err error
			sms[j], out[j], err = NewStateMachine(p)
			if err != nil {
				b.Fatal(err)
			}
		}
		if _, err := protocol.RunLocal(parties, sms, out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAgreementToy223(b *testing.B)    { benchmarkAgreement(b, curves.NameToy223) }
func BenchmarkAgreementSecp256k1(b *testing.B) { benchmarkAgreement(b, curves.NameSecp256k1) }
func BenchmarkAgreementEd25519(b *testing.B)   { benchmarkAgreement(b, curves.NameEd25519) }
