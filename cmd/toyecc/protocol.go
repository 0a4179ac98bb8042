package main

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/internal/log"
	"github.com/smallyu/go-toyecc/internal/protocol/ecdh"
	"github.com/smallyu/go-toyecc/internal/protocol/elgamal"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

func groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the registered groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range curves.Names() {
				g, err := curves.New(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\torder %s\n", name, g.Order())
			}
			return nil
		},
	}
}

// group resolves the group for the protocol commands. "custom" builds a toy
// group from the configured curve and generator, named after its parameters.
func (c *config) group() (curves.Group, error) {
	if c.Group != "custom" {
		g, err := curves.New(c.Group)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v, custom)", err, curves.Names())
		}
		return g, nil
	}

	curve, err := c.Curve()
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("custom-%d-%d-%d-%d-%d", curve.A().Value(), curve.B().Value(), curve.Prime(), c.GX, c.GY)
	g, err := curves.NewToy(name, curve, c.GX, c.GY)
	if err != nil {
		return nil, kindError(err)
	}
	return g, nil
}

func dhCmd(cfg *config) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "dh",
		Short: "Run a two-party Diffie-Hellman key agreement in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfg.group()
			if err != nil {
				return err
			}
			if err := registerCustom(g); err != nil {
				return err
			}

			alice := protocol.NewPartyID("alice")
			bob := protocol.NewPartyID("bob")
			parties := []protocol.PartyID{alice, bob}

			sms := make([]protocol.StateMachine, 2)
			out := make([][]protocol.Message, 2)
			for i, p := range parties {
				params := &protocol.Parameters{
					PartyID:   p,
					Parties:   parties,
					Curve:     g.Name(),
					SessionID: []byte(sessionID),
				}
				if sms[i], out[i], err = ecdh.NewStateMachine(params); err != nil {
					return err
				}
			}

			results, err := protocol.RunLocal(parties, sms, out)
			if err != nil {
				if party, ok := protocol.Blamed(err); ok {
					log.Warnw("key agreement aborted", "blamed", party.ID())
				}
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range results {
				res := r.(*ecdh.Result)
				log.Infow("key agreement complete", "party", res.LocalPartyID.ID(), "group", res.Group)
				fmt.Fprintf(w, "%s public: %s\n", res.LocalPartyID.ID(), res.PublicKey)
			}
			res := results[0].(*ecdh.Result)
			fmt.Fprintf(w, "shared secret: %s\nkey: %s\n", res.SharedSecret, hex.EncodeToString(res.Key))
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "toyecc-cli", "session identifier")
	return cmd
}

// registerCustom makes a custom toy group reachable by name for the protocol
// state machines.
func registerCustom(g curves.Group) error {
	if _, err := curves.New(g.Name()); err == nil {
		return nil
	}
	return curves.Register(g.Name(), g)
}

func elgamalCmd(cfg *config) *cobra.Command {
	var (
		messages []uint64
		maxValue uint64
	)

	cmd := &cobra.Command{
		Use:   "elgamal",
		Short: "Encrypt values, add the ciphertexts and decrypt the sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfg.group()
			if err != nil {
				return err
			}
			sk, err := elgamal.GenerateKey(g, nil)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "public key: %s\n", sk.Y)

			var sum *elgamal.Ciphertext
			for _, m := range messages {
				c, err := sk.PublicKey.EncryptValue(new(big.Int).SetUint64(m), nil, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "enc(%d) = %s\n", m, c)

				if sum == nil {
					sum = c
				} else if sum, err = sum.Add(c); err != nil {
					return err
				}
			}
			if sum == nil {
				return fmt.Errorf("no messages given")
			}

			m, err := sk.DecryptValue(sum, maxValue)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "decrypted sum: %s\n", m)
			return nil
		},
	}
	cmd.Flags().Uint64SliceVar(&messages, "message", []uint64{1}, "values to encrypt")
	cmd.Flags().Uint64Var(&maxValue, "max", 1<<20, "largest value searched when decoding")
	return cmd
}
