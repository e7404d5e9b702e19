// Package identity generates and verifies the ed25519 keypair and
// blake3 genesis hash that sign each snapshot, generalized from a
// pattern of ed25519.GenerateKey plus a blake3 hash of a JSON genesis
// record for one server identity into one identity per simulation run.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"
)

// Genesis is the record hashed to produce a run's identity: binding
// the seed and creation time means two runs of the same seed still
// get distinct identities.
type Genesis struct {
	Seed      uint64 `json:"seed"`
	CreatedAt int64  `json:"created_at"`
	PubKey    string `json:"pub_key"`
}

// Identity holds the keypair and derived genesis hash for one run.
type Identity struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
	GenesisHex string
}

// New generates a fresh keypair and hashes it against seed/createdAt
// into the genesis identifier.
func New(seed uint64, createdAt int64) (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("identity: generate key: %w", err)
	}

	gen := Genesis{Seed: seed, CreatedAt: createdAt, PubKey: hex.EncodeToString(pub)}
	genJSON, err := json.Marshal(gen)
	if err != nil {
		return nil, fmt.Errorf("identity: marshal genesis: %w", err)
	}
	sum := blake3.Sum256(genJSON)

	return &Identity{
		PublicKey:  pub,
		PrivateKey: priv,
		GenesisHex: hex.EncodeToString(sum[:]),
	}, nil
}

// Restore rebuilds an Identity from hex-encoded key material persisted
// across a restart, re-deriving the genesis hash the same way New did.
func Restore(pubHex, privHex string, seed uint64, createdAt int64) (*Identity, error) {
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, fmt.Errorf("identity: decode public key: %w", err)
	}
	privBytes, err := hex.DecodeString(privHex)
	if err != nil {
		return nil, fmt.Errorf("identity: decode private key: %w", err)
	}

	gen := Genesis{Seed: seed, CreatedAt: createdAt, PubKey: pubHex}
	genJSON, err := json.Marshal(gen)
	if err != nil {
		return nil, fmt.Errorf("identity: marshal genesis: %w", err)
	}
	sum := blake3.Sum256(genJSON)

	return &Identity{
		PublicKey:  ed25519.PublicKey(pubBytes),
		PrivateKey: ed25519.PrivateKey(privBytes),
		GenesisHex: hex.EncodeToString(sum[:]),
	}, nil
}

// Sign produces a detached signature over an arbitrary payload, used
// to sign snapshot bytes before they are written to disk or streamed
// over the pipe protocol.
func (id *Identity) Sign(payload []byte) []byte {
	return ed25519.Sign(id.PrivateKey, payload)
}

// Verify checks a signature produced by Sign (or by any holder of the
// matching private key).
func Verify(pub ed25519.PublicKey, payload, sig []byte) bool {
	return ed25519.Verify(pub, payload, sig)
}

// PublicKeyHex and PrivateKeyHex return the hex encodings stored in
// meta, mirroring a system_meta table's public_key/private_key rows.
func (id *Identity) PublicKeyHex() string  { return hex.EncodeToString(id.PublicKey) }
func (id *Identity) PrivateKeyHex() string { return hex.EncodeToString(id.PrivateKey) }
