// Copyright 2026 Fedimint Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package musig provides the aggregate-signature capability used to
// authorize federation transactions: a single signature that
// authenticates a message against a set of public keys at once.
//
// It is a thin wrapper over the MuSig2 scheme from btcec. Keys are
// aggregated in sorted order, so verification does not depend on the
// order the key set is supplied in.
package musig

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcec/v2/schnorr/musig2"

	"github.com/toyota-corolla0/fedimint/encoding"
)

// SignatureSize is the size of an aggregate signature, BIP-340 schnorr
// form.
const SignatureSize = schnorr.SignatureSize

// Signature is an aggregate signature over a 32-byte message digest.
type Signature [SignatureSize]byte

func (s Signature) ConsensusEncode(w io.Writer) (int, error) {
	return w.Write(s[:])
}

func (s *Signature) ConsensusDecode(r io.Reader) error {
	if _, err := io.ReadFull(r, s[:]); err != nil {
		return encoding.WrapDecodeError(err)
	}
	return nil
}

// Verify checks an aggregate signature over msg against the given key
// set. Any failure, a malformed signature included, yields false without
// further detail.
func Verify(msg [32]byte, sig Signature, keys []*btcec.PublicKey) bool {
	if len(keys) == 0 {
		return false
	}
	aggKey, _, _, err := musig2.AggregateKeys(keys, true)
	if err != nil {
		return false
	}
	parsedSig, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return parsedSig.Verify(msg[:], aggKey.FinalKey)
}

// Sign produces an aggregate signature over msg for the given signer
// set by running the full MuSig2 nonce-exchange, partial-signature and
// combination flow locally. It is used by clients constructing
// transactions and by tests; a real federation runs the rounds across
// its members.
func Sign(msg [32]byte, privKeys []*btcec.PrivateKey) (Signature, error) {
	var sig Signature
	if len(privKeys) == 0 {
		return sig, fmt.Errorf("no signing keys provided")
	}

	pubKeys := make([]*btcec.PublicKey, len(privKeys))
	for i, privKey := range privKeys {
		pubKeys[i] = privKey.PubKey()
	}

	sessions := make([]*musig2.Session, len(privKeys))
	for i, privKey := range privKeys {
		ctx, err := musig2.NewContext(
			privKey,
			true,
			musig2.WithKnownSigners(pubKeys),
		)
		if err != nil {
			return sig, fmt.Errorf("creating signing context: %w", err)
		}
		session, err := ctx.NewSession()
		if err != nil {
			return sig, fmt.Errorf("creating signing session: %w", err)
		}
		sessions[i] = session
	}

	// Nonce exchange round
	for i, session := range sessions {
		for j, other := range sessions {
			if i == j {
				continue
			}
			if _, err := session.RegisterPubNonce(other.PublicNonce()); err != nil {
				return sig, fmt.Errorf("registering nonce: %w", err)
			}
		}
	}

	// Partial signature round, combined into the first session
	partialSigs := make([]*musig2.PartialSignature, len(sessions))
	for i, session := range sessions {
		partialSig, err := session.Sign(msg)
		if err != nil {
			return sig, fmt.Errorf("producing partial signature: %w", err)
		}
		partialSigs[i] = partialSig
	}
	for _, partialSig := range partialSigs[1:] {
		if _, err := sessions[0].CombineSig(partialSig); err != nil {
			return sig, fmt.Errorf("combining partial signature: %w", err)
		}
	}

	finalSig := sessions[0].FinalSig()
	if finalSig == nil {
		return sig, fmt.Errorf("signature combination incomplete")
	}
	copy(sig[:], finalSig.Serialize())
	return sig, nil
}
