// Package wire implements the on-the-wire snapshot envelope used by
// the "save"/"load" pipe commands, grounded on an existing dependency
// on google.golang.org/protobuf with no .proto file in the tree, so
// this uses the library's low-level protowire primitives directly
// rather than protoc-generated message types, giving the same compact
// length-delimited tagged encoding without a code-generation step.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers for the envelope, stable across generation_version
// bumps: new fields get new numbers, old ones are never reused.
const (
	fieldGenerationVersion = 1
	fieldSeed              = 2
	fieldTick              = 3
	fieldSignature         = 4
	fieldPayload           = 5
)

// Envelope is the outermost wrapper persisted to the save path:
// identifying metadata plus the signed, already-compressed payload
// bytes produced by internal/persist's blob encoder.
type Envelope struct {
	GenerationVersion uint32
	Seed              uint64
	Tick              uint64
	Signature         []byte
	Payload           []byte
}

// Marshal encodes an Envelope using protobuf's tag-length-value wire
// format, field order matching the constants above.
func Marshal(e Envelope) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldGenerationVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.GenerationVersion))
	b = protowire.AppendTag(b, fieldSeed, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Seed)
	b = protowire.AppendTag(b, fieldTick, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Tick)
	b = protowire.AppendTag(b, fieldSignature, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Signature)
	b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Payload)
	return b
}

// Unmarshal decodes bytes produced by Marshal. Unknown field numbers
// are skipped, the forward-compatible behaviour a
// "generation_version bump" schema evolution relies on.
func Unmarshal(data []byte) (Envelope, error) {
	var e Envelope
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Envelope{}, fmt.Errorf("wire: invalid tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldGenerationVersion:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid generation_version: %w", protowire.ParseError(m))
			}
			e.GenerationVersion = uint32(v)
			data = data[m:]
		case fieldSeed:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid seed: %w", protowire.ParseError(m))
			}
			e.Seed = v
			data = data[m:]
		case fieldTick:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid tick: %w", protowire.ParseError(m))
			}
			e.Tick = v
			data = data[m:]
		case fieldSignature:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid signature: %w", protowire.ParseError(m))
			}
			e.Signature = append([]byte(nil), v...)
			data = data[m:]
		case fieldPayload:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid payload: %w", protowire.ParseError(m))
			}
			e.Payload = append([]byte(nil), v...)
			data = data[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return Envelope{}, fmt.Errorf("wire: invalid field %d: %w", num, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}
	return e, nil
}
