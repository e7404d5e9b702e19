package pipeserver

import (
	"crypto/ed25519"

	"github.com/vitadek/universe/internal/identity"
)

// identityVerify adapts identity.Verify's ed25519.PublicKey parameter
// to the raw []byte fields cmdLoad decodes from a wire.Envelope.
func identityVerify(pub, payload, sig []byte) bool {
	return identity.Verify(ed25519.PublicKey(pub), payload, sig)
}
