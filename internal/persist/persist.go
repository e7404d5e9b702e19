// Package persist implements the ordered key-value persistence
// contract: meta, sector headers, system blobs, and probe blobs, each
// lz4-compressed and blake3-checksummed before they reach the store.
// Grounded on original_source/src/persist.c's table layout and a
// sql.Open + WAL + schema migration habit, generalized from a single
// sqlite file to any store satisfying the KVStore contract below.
package persist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/pkg/types"
)

// KVStore is the external key-value contract a store must satisfy:
// get/set/delete, a prefix scan returned as an unordered map (callers
// sort the keys themselves), and Begin, which opens a caller-managed
// transaction. Any store satisfying it — sqlite, bolt, a remote KV
// service — can back a Store.
type KVStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	ScanPrefix(prefix string) (map[string][]byte, error)
	Begin() (Tx, error)
	Close() error
}

// Tx is one transactional batch of writes.
type Tx interface {
	Set(key string, value []byte) error
	Delete(key string) error
	Commit() error
	Rollback() error
}

const (
	keyMeta        = "meta"
	prefixProbe    = "probe:"
	prefixSector   = "sector:"
	prefixSystem   = "system:"
	generationVersion = 1
)

func probeKey(id types.UID) string  { return prefixProbe + id.Hex() }
func systemKey(id types.UID) string { return prefixSystem + id.Hex() }
func sectorKey(c types.SectorCoord) string {
	return fmt.Sprintf("%s%d,%d,%d", prefixSector, c.X, c.Y, c.Z)
}

// Store wraps a KVStore with a compressed, checksummed blob format
// and typed accessors.
type Store struct {
	kv KVStore
}

func New(kv KVStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) Close() error { return s.kv.Close() }

// Meta is the "meta:{seed,tick,generation_version}" record, extended
// with the identity fields needed to detect tampered save files: the
// run's public key and a signature over the tick/seed/probe-set
// checksum computed at save time.
type Meta struct {
	Seed              uint64 `json:"seed"`
	Tick              uint64 `json:"tick"`
	GenerationVersion int    `json:"generation_version"`
	Checksum          string `json:"checksum,omitempty"`
	PubKeyHex         string `json:"pub_key_hex,omitempty"`
	PrivKeyHex        string `json:"priv_key_hex,omitempty"`
	SignatureHex      string `json:"signature_hex,omitempty"`
}

// blob wraps a JSON payload with an lz4-compressed body and a blake3
// checksum of the uncompressed bytes, enough self-description to
// detect a schema bump.
type blob struct {
	GenerationVersion int    `json:"generation_version"`
	Checksum          string `json:"checksum"`
	Compressed        []byte `json:"compressed"`
}

func encodeBlob(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	sum := blake3.Sum256(raw)

	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	var c lz4.Compressor
	n, err := c.CompressBlock(raw, compressed)
	if err != nil {
		return nil, err
	}

	b := blob{
		GenerationVersion: generationVersion,
		Checksum:          fmt.Sprintf("%x", sum),
		Compressed:        compressed[:n],
	}
	return json.Marshal(struct {
		blob
		RawLen int `json:"raw_len"`
	}{blob: b, RawLen: len(raw)})
}

func decodeBlob(data []byte, out any) error {
	var wrapped struct {
		blob
		RawLen int `json:"raw_len"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}

	raw := make([]byte, wrapped.RawLen)
	n, err := lz4.UncompressBlock(wrapped.Compressed, raw)
	if err != nil {
		return err
	}
	raw = raw[:n]

	sum := blake3.Sum256(raw)
	if fmt.Sprintf("%x", sum) != wrapped.Checksum {
		return fmt.Errorf("persist: checksum mismatch, blob corrupted")
	}

	return json.Unmarshal(raw, out)
}

// SaveMeta writes the universe-level header in one transaction.
func (s *Store) SaveMeta(m Meta) *obserr.Error {
	data, err := encodeBlob(m)
	if err != nil {
		return obserr.StorageErr("encode meta: %v", err)
	}
	if err := s.kv.Set(keyMeta, data); err != nil {
		return obserr.StorageErr("write meta: %v", err)
	}
	return nil
}

// LoadMeta reads the universe-level header, false if not present.
func (s *Store) LoadMeta() (Meta, bool, *obserr.Error) {
	data, ok, err := s.kv.Get(keyMeta)
	if err != nil {
		return Meta{}, false, obserr.StorageErr("read meta: %v", err)
	}
	if !ok {
		return Meta{}, false, nil
	}
	var m Meta
	if err := decodeBlob(data, &m); err != nil {
		return Meta{}, false, obserr.StorageErr("decode meta: %v", err)
	}
	return m, true, nil
}

// SaveTick updates only the tick field of meta, a lightweight path
// for per-tick checkpointing.
func (s *Store) SaveTick(tick uint64) *obserr.Error {
	m, _, err := s.LoadMeta()
	if err != nil {
		return err
	}
	m.Tick = tick
	return s.SaveMeta(m)
}

// SaveProbeBlob persists one probe's serialized state under its
// UID-hex key.
func (s *Store) SaveProbeBlob(id types.UID, payload any) *obserr.Error {
	data, err := encodeBlob(payload)
	if err != nil {
		return obserr.StorageErr("encode probe %s: %v", id.Hex(), err)
	}
	if err := s.kv.Set(probeKey(id), data); err != nil {
		return obserr.StorageErr("write probe %s: %v", id.Hex(), err)
	}
	return nil
}

// LoadProbeBlob reads back one probe's serialized state.
func (s *Store) LoadProbeBlob(id types.UID, out any) (bool, *obserr.Error) {
	data, ok, err := s.kv.Get(probeKey(id))
	if err != nil {
		return false, obserr.StorageErr("read probe %s: %v", id.Hex(), err)
	}
	if !ok {
		return false, nil
	}
	if err := decodeBlob(data, out); err != nil {
		return false, obserr.StorageErr("decode probe %s: %v", id.Hex(), err)
	}
	return true, nil
}

// IterateProbeKeys returns every stored probe UID-hex key in sorted
// order, the order a resume restores probes in.
func (s *Store) IterateProbeKeys() ([]string, *obserr.Error) {
	all, err := s.kv.ScanPrefix(prefixProbe)
	if err != nil {
		return nil, obserr.StorageErr("scan probes: %v", err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// LoadProbeBlobByKey reads and decodes the probe blob stored under a
// key previously returned by IterateProbeKeys.
func (s *Store) LoadProbeBlobByKey(key string, out any) *obserr.Error {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		return obserr.StorageErr("read %s: %v", key, err)
	}
	if !ok {
		return obserr.Missing("no value at key %s", key)
	}
	if err := decodeBlob(data, out); err != nil {
		return obserr.StorageErr("decode %s: %v", key, err)
	}
	return nil
}

// SectorExists reports whether coord has a sector header recorded.
func (s *Store) SectorExists(coord types.SectorCoord) (bool, *obserr.Error) {
	_, ok, err := s.kv.Get(sectorKey(coord))
	if err != nil {
		return false, obserr.StorageErr("read sector header: %v", err)
	}
	return ok, nil
}

// SectorHeader is the system-count header persisted for a sector.
type SectorHeader struct {
	SystemCount int    `json:"system_count"`
	SystemIDs   []types.UID `json:"system_ids"`
	Tick        uint64 `json:"tick"`
}

// SaveSector records a generated sector's header and each of its
// systems in one logical transaction.
func (s *Store) SaveSector(coord types.SectorCoord, tick uint64, systemIDs []types.UID, systems []any) *obserr.Error {
	tx, err := s.kv.Begin()
	if err != nil {
		return obserr.StorageErr("begin sector transaction: %v", err)
	}

	header := SectorHeader{SystemCount: len(systemIDs), SystemIDs: systemIDs, Tick: tick}
	headerData, herr := encodeBlob(header)
	if herr != nil {
		tx.Rollback()
		return obserr.StorageErr("encode sector header: %v", herr)
	}
	if err := tx.Set(sectorKey(coord), headerData); err != nil {
		tx.Rollback()
		return obserr.StorageErr("write sector header: %v", err)
	}

	for i, sysID := range systemIDs {
		data, serr := encodeBlob(systems[i])
		if serr != nil {
			tx.Rollback()
			return obserr.StorageErr("encode system %s: %v", sysID.Hex(), serr)
		}
		if err := tx.Set(systemKey(sysID), data); err != nil {
			tx.Rollback()
			return obserr.StorageErr("write system %s: %v", sysID.Hex(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return obserr.StorageErr("commit sector transaction: %v", err)
	}
	return nil
}

// LoadSectorHeader reads back one sector's header, false if absent.
func (s *Store) LoadSectorHeader(coord types.SectorCoord) (SectorHeader, bool, *obserr.Error) {
	data, ok, err := s.kv.Get(sectorKey(coord))
	if err != nil {
		return SectorHeader{}, false, obserr.StorageErr("read sector header: %v", err)
	}
	if !ok {
		return SectorHeader{}, false, nil
	}
	var h SectorHeader
	if err := decodeBlob(data, &h); err != nil {
		return SectorHeader{}, false, obserr.StorageErr("decode sector header: %v", err)
	}
	return h, true, nil
}

// LoadSystem reads back one system blob by UID.
func (s *Store) LoadSystem(id types.UID, out any) (bool, *obserr.Error) {
	data, ok, err := s.kv.Get(systemKey(id))
	if err != nil {
		return false, obserr.StorageErr("read system %s: %v", id.Hex(), err)
	}
	if !ok {
		return false, nil
	}
	if err := decodeBlob(data, out); err != nil {
		return false, obserr.StorageErr("decode system %s: %v", id.Hex(), err)
	}
	return true, nil
}
