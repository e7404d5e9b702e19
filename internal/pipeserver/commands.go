package pipeserver

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/vitadek/universe/internal/events"
	"github.com/vitadek/universe/internal/persist"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/scenario"
	"github.com/vitadek/universe/internal/sim"
	"github.com/vitadek/universe/internal/wire"
	"github.com/vitadek/universe/pkg/types"
)

const saveFilePerm = 0o644

// cmdTick decodes the per-probe action map, advances the universe by
// one tick, and returns every observation emitted, in the UID-ascending
// order sim.Core.Tick already produces.
func (s *Server) cmdTick(line []byte) map[string]any {
	var req struct {
		Actions map[string]actionWire `json:"actions"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("tick: " + err.Error())
	}

	actions := make(map[types.UID]probe.Action, len(req.Actions))
	for idStr, w := range req.Actions {
		id, err := types.ParseUID(idStr)
		if err != nil {
			return errResponse("tick: bad probe id " + idStr)
		}
		a, err := decodeAction(w)
		if err != nil {
			return errResponse("tick: " + err.Error())
		}
		actions[id] = a
	}

	observations := s.Core.Tick(actions)
	obsWire := make([]map[string]any, 0, len(observations))
	for _, o := range observations {
		obsWire = append(obsWire, encodeObservation(o))
	}
	return okResponse(map[string]any{"tick": s.Core.TickNum, "observations": obsWire})
}

// cmdStatus lists every probe's externally-visible state.
func (s *Server) cmdStatus() map[string]any {
	ids := s.Core.SortedProbeIDs()
	probes := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		probes = append(probes, encodeProbe(s.Core.Probes[id]))
	}
	return okResponse(map[string]any{"tick": s.Core.TickNum, "probes": probes})
}

// cmdMetrics samples the running accumulator against the live probe table.
func (s *Server) cmdMetrics() map[string]any {
	ids := s.Core.SortedProbeIDs()
	probes := make([]*probe.Probe, 0, len(ids))
	for _, id := range ids {
		probes = append(probes, s.Core.Probes[id])
	}
	snap := s.Core.Metrics.Sample(s.Core.TickNum, probes)
	return okResponse(map[string]any{
		"tick":                    snap.Tick,
		"probes_spawned":          snap.ProbesSpawned,
		"avg_tech":                snap.AvgTech,
		"avg_trust":               snap.AvgTrust,
		"systems_explored":        snap.SystemsExplored,
		"total_discoveries":       snap.TotalDiscoveries,
		"total_hazards_survived":  snap.TotalHazardsSurvived,
	})
}

type injectWire struct {
	Type        string  `json:"type"`
	Subtype     int     `json:"subtype"`
	Description string  `json:"description"`
	Severity    float64 `json:"severity"`
	ProbeID     string  `json:"probe"`
}

// cmdInject appends one ad-hoc event to the external injection queue;
// it fires on the very next tick processed.
func (s *Server) cmdInject(line []byte) map[string]any {
	var req struct {
		Event injectWire `json:"event"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("inject: " + err.Error())
	}
	evtType, ok := events.EventTypeFromName(req.Event.Type)
	if !ok {
		return errResponse("inject: unrecognized event type " + req.Event.Type)
	}
	probeID, err := decodeUID(req.Event.ProbeID)
	if err != nil {
		return errResponse("inject: " + err.Error())
	}
	n := s.Core.Scenario.Inject(scenario.Entry{
		Type:        evtType,
		Subtype:     req.Event.Subtype,
		Description: req.Event.Description,
		Severity:    req.Event.Severity,
		ProbeID:     probeID,
	})
	return okResponse(map[string]any{"queued": n})
}

// cmdSnapshot buffers the current universe state under tag, keyed for
// a later restore within this same process.
func (s *Server) cmdSnapshot(line []byte) map[string]any {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("snapshot: " + err.Error())
	}
	if req.Tag == "" {
		return errResponse("snapshot: \"tag\" is required")
	}
	snap := s.Core.Snapshot(req.Tag)
	s.snapshots[req.Tag] = snap
	return okResponse(map[string]any{"snapshot": req.Tag, "tick": snap.Tick})
}

// cmdRestore overwrites the live universe with a previously buffered
// snapshot.
func (s *Server) cmdRestore(line []byte) map[string]any {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("restore: " + err.Error())
	}
	snap, ok := s.snapshots[req.Tag]
	if !ok {
		return errResponse("restore: unknown snapshot tag " + req.Tag)
	}
	s.Core.Restore(snap)
	return okResponse(map[string]any{"restored": req.Tag, "tick": s.Core.TickNum})
}

// cmdConfig merges arbitrary runtime tuning data into the server's
// config store, for callers that want to adjust scenario or scan
// parameters without a restart.
func (s *Server) cmdConfig(line []byte) map[string]any {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("config: " + err.Error())
	}
	for k, v := range req.Data {
		s.config[k] = v
	}
	return okResponse(map[string]any{"entries": len(req.Data)})
}

// savePayload is the JSON shape compressed into a wire.Envelope's
// Payload field: the full probe table plus the lineage ledger, enough
// to fully reconstruct the universe on load.
type savePayload struct {
	Probes  map[string]*probe.Probe `json:"probes"`
	Lineage []lineageWire           `json:"lineage"`
}

type lineageWire struct {
	ParentID   string `json:"parent_id"`
	ChildID    string `json:"child_id"`
	BirthTick  uint64 `json:"birth_tick"`
	Generation uint32 `json:"generation"`
}

// cmdSave serializes the universe into a signed, lz4-compressed
// wire.Envelope and writes it to path, independent of any --db store
// (the file-based "save(path)" form, distinct from the continuous
// sqlite-backed autosave).
func (s *Server) cmdSave(line []byte) map[string]any {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("save: " + err.Error())
	}
	if req.Path == "" {
		return errResponse("save: \"path\" is required")
	}

	ids := s.Core.SortedProbeIDs()
	payload := savePayload{Probes: make(map[string]*probe.Probe, len(ids))}
	for _, id := range ids {
		payload.Probes[id.String()] = s.Core.Probes[id]
	}
	for _, e := range s.Core.Lineage.Entries {
		payload.Lineage = append(payload.Lineage, lineageWire{
			ParentID: e.ParentID.String(), ChildID: e.ChildID.String(),
			BirthTick: e.BirthTick, Generation: e.Generation,
		})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return errResponse("save: " + err.Error())
	}
	compressed, err := lz4Compress(raw)
	if err != nil {
		return errResponse("save: compress: " + err.Error())
	}

	env := wire.Envelope{
		GenerationVersion: uint32(sim.GenerationVersion),
		Seed:              s.Core.Seed,
		Tick:              s.Core.TickNum,
		Payload:           compressed,
	}
	if s.Identity != nil {
		env.Signature = s.Identity.Sign(compressed)
	}

	if err := os.WriteFile(req.Path, wire.Marshal(env), saveFilePerm); err != nil {
		return errResponse("save: write file: " + err.Error())
	}

	return okResponse(map[string]any{"saved": req.Path, "tick": s.Core.TickNum, "probes": len(ids)})
}

// cmdLoad reads back a wire.Envelope written by cmdSave, verifies its
// signature when the server has an identity and the envelope carries
// one, and rebuilds the universe's probe table and lineage ledger.
func (s *Server) cmdLoad(line []byte) map[string]any {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("load: " + err.Error())
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return errResponse("load: " + err.Error())
	}
	env, err := wire.Unmarshal(data)
	if err != nil {
		return errResponse("load: " + err.Error())
	}
	if s.Identity != nil && len(env.Signature) > 0 {
		if !identityVerify(s.Identity.PublicKey, env.Payload, env.Signature) {
			return errResponse("load: signature verification failed, save file may be tampered")
		}
	}

	raw, err := lz4Uncompress(env.Payload)
	if err != nil {
		return errResponse("load: decompress: " + err.Error())
	}

	var payload savePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errResponse("load: " + err.Error())
	}

	probes := make(map[types.UID]*probe.Probe, len(payload.Probes))
	for _, p := range payload.Probes {
		probes[p.ID] = p
	}

	s.Core.Seed = env.Seed
	s.Core.Restore(sim.Snapshot{Tag: "__load__", Tick: env.Tick, Seed: env.Seed, Probes: probes})

	s.Core.Lineage.Entries = s.Core.Lineage.Entries[:0]
	for _, e := range payload.Lineage {
		parentID, perr := types.ParseUID(e.ParentID)
		childID, cerr := types.ParseUID(e.ChildID)
		if perr != nil || cerr != nil {
			continue
		}
		s.Core.Lineage.Record(parentID, childID, e.BirthTick, e.Generation)
	}

	return okResponse(map[string]any{"loaded": req.Path, "tick": s.Core.TickNum, "probes": len(probes)})
}

// cmdScan runs a long-range sensor sweep from the named probe's
// current sector.
func (s *Server) cmdScan(line []byte) map[string]any {
	var req struct {
		ProbeID string `json:"probe_id"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("scan: " + err.Error())
	}
	id, err := types.ParseUID(req.ProbeID)
	if err != nil {
		return errResponse("scan: " + err.Error())
	}
	p, ok := s.Core.Probes[id]
	if !ok {
		return errResponse("scan: unknown probe " + req.ProbeID)
	}

	results := s.Core.ScanFrom(p, defaultScanResults)
	systemsWire := make([]map[string]any, 0, len(results))
	for _, r := range results {
		name := ""
		if target := s.Core.SystemFor(&probe.Probe{Sector: r.Sector, SystemID: r.SystemID}); target != nil {
			name = target.Name
		}
		systemsWire = append(systemsWire, map[string]any{
			"system_id":              r.SystemID.String(),
			"name":                   name,
			"star_class":             r.StarClass.String(),
			"distance_ly":            r.DistanceLY,
			"estimated_travel_ticks": r.EstimatedTravelTicks,
			"position":               encodeVec3(r.Position),
			"sector":                 encodeSector(r.Sector),
		})
	}
	return okResponse(map[string]any{"probe_id": req.ProbeID, "systems": systemsWire})
}

// cmdScenario either bulk-loads a scheduled event list (when events is
// present) or reports the currently pending scheduled entries.
func (s *Server) cmdScenario(line []byte) map[string]any {
	var req struct {
		Events []struct {
			AtTick      uint64  `json:"at_tick"`
			Type        string  `json:"type"`
			Subtype     int     `json:"subtype"`
			Description string  `json:"description"`
			Severity    float64 `json:"severity"`
			ProbeID     string  `json:"probe"`
		} `json:"events"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("scenario: " + err.Error())
	}

	if len(req.Events) == 0 {
		pending := s.Core.Scenario.Pending()
		eventsWire := make([]map[string]any, 0, len(pending))
		for _, e := range pending {
			eventsWire = append(eventsWire, map[string]any{
				"at_tick":     e.AtTick,
				"type":        e.Type.String(),
				"subtype":     e.Subtype,
				"description": e.Description,
				"severity":    e.Severity,
				"probe":       e.ProbeID.String(),
			})
		}
		return okResponse(map[string]any{"events": eventsWire})
	}

	entries := make([]scenario.Entry, 0, len(req.Events))
	for _, w := range req.Events {
		evtType, ok := events.EventTypeFromName(w.Type)
		if !ok {
			return errResponse("scenario: unrecognized event type " + w.Type)
		}
		probeID, err := decodeUID(w.ProbeID)
		if err != nil {
			return errResponse("scenario: " + err.Error())
		}
		entries = append(entries, scenario.Entry{
			AtTick:      w.AtTick,
			Type:        evtType,
			Subtype:     w.Subtype,
			Description: w.Description,
			Severity:    w.Severity,
			ProbeID:     probeID,
		})
	}
	n := s.Core.Scenario.Load(entries)
	return okResponse(map[string]any{"loaded": n})
}

// cmdLineage reports the full parent/child birth ledger.
func (s *Server) cmdLineage() map[string]any {
	entries := make([]map[string]any, 0, len(s.Core.Lineage.Entries))
	for _, e := range s.Core.Lineage.Entries {
		entries = append(entries, map[string]any{
			"parent_id":  e.ParentID.String(),
			"child_id":   e.ChildID.String(),
			"birth_tick": e.BirthTick,
			"generation": e.Generation,
		})
	}
	return okResponse(map[string]any{"entries": entries})
}

// cmdHistory reports every logged event for one probe.
func (s *Server) cmdHistory(line []byte) map[string]any {
	var req struct {
		ProbeID string `json:"probe_id"`
	}
	if err := json.Unmarshal(line, &req); err != nil {
		return errResponse("history: " + err.Error())
	}
	id, err := types.ParseUID(req.ProbeID)
	if err != nil {
		return errResponse("history: " + err.Error())
	}
	log := s.Core.Events.ForProbe(id)
	eventsWire := make([]map[string]any, 0, len(log))
	for _, e := range log {
		eventsWire = append(eventsWire, map[string]any{
			"type":        e.Type.String(),
			"subtype":     e.Subtype,
			"tick":        e.Tick,
			"severity":    e.Severity,
			"description": e.Description,
		})
	}
	return okResponse(map[string]any{"events": eventsWire})
}

// cmdCheckpoint persists the current probe table and tick/seed meta
// into the continuous --db store, the same schema resumeFromStore in
// cmd/universe reads back on --resume. Distinct from save/load, which
// round-trip a single signed file at an arbitrary path.
func (s *Server) cmdCheckpoint() map[string]any {
	if s.Store == nil {
		return errResponse("checkpoint: no --db store configured for this run")
	}

	ids := s.Core.SortedProbeIDs()
	checksum := sim.Snapshot{Tag: "checkpoint", Tick: s.Core.TickNum, Seed: s.Core.Seed, Probes: s.Core.Probes}.Checksum()
	meta := persist.Meta{
		Seed:              s.Core.Seed,
		Tick:              s.Core.TickNum,
		GenerationVersion: sim.GenerationVersion,
		Checksum:          checksum,
	}
	if s.Identity != nil {
		meta.PubKeyHex = s.Identity.PublicKeyHex()
		meta.PrivKeyHex = s.Identity.PrivateKeyHex()
		meta.SignatureHex = hex.EncodeToString(s.Identity.Sign([]byte(checksum)))
	}
	if oerr := s.Store.SaveMeta(meta); oerr != nil {
		return errResponse("checkpoint: " + oerr.Error())
	}
	for _, id := range ids {
		if oerr := s.Store.SaveProbeBlob(id, s.Core.Probes[id]); oerr != nil {
			return errResponse("checkpoint: " + oerr.Error())
		}
	}
	return okResponse(map[string]any{"checkpointed": true, "tick": s.Core.TickNum, "probes": len(ids)})
}
