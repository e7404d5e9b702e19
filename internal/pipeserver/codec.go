// Package pipeserver implements the line-oriented JSON command
// protocol: one JSON document per input line, one response per line
// of output, every response an {"ok": bool, ...} envelope. It decodes
// into small ad-hoc structs and encodes responses as
// map[string]interface{}, generalized from per-route HTTP handlers to
// per-command line handlers over stdin/stdout.
package pipeserver

import (
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/society"
	"github.com/vitadek/universe/internal/sim"
	"github.com/vitadek/universe/pkg/types"
)

// actionWire is the wire shape of one probe's queued action inside a
// tick command's "actions" map. Only the fields the
// named action type reads are required; the rest are ignored.
type actionWire struct {
	Type           string      `json:"type"`
	TargetBody     string      `json:"target_body,omitempty"`
	TargetSystem   string      `json:"target_system,omitempty"`
	TargetSector   *sectorWire `json:"target_sector,omitempty"`
	TargetProbe    string      `json:"target_probe,omitempty"`
	TargetResource string      `json:"target_resource,omitempty"`
	SurveyLevel    int         `json:"survey_level,omitempty"`
	Amount         float64     `json:"amount,omitempty"`
	StructureType  string      `json:"structure_type,omitempty"`
	Message        string      `json:"message,omitempty"`
	ProposalIdx    int         `json:"proposal_idx,omitempty"`
	VoteFavor      bool        `json:"vote_favor,omitempty"`
	ResearchDomain string      `json:"research_domain,omitempty"`
}

type sectorWire struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

func decodeUID(s string) (types.UID, error) {
	if s == "" {
		return types.NullUID, nil
	}
	return types.ParseUID(s)
}

// decodeAction translates one wire action into a probe.Action,
// resolving every lower-snake enum name through the package that owns
// it (pkg/types, internal/society, internal/probe).
func decodeAction(w actionWire) (probe.Action, error) {
	actType, ok := probe.ActionTypeFromName(w.Type)
	if !ok {
		return probe.Action{}, errUnknownField("type", w.Type)
	}

	a := probe.Action{
		Type:        actType,
		SurveyLevel: w.SurveyLevel,
		Amount:      w.Amount,
		Message:     w.Message,
		ProposalIdx: w.ProposalIdx,
		VoteFavor:   w.VoteFavor,
	}

	var err error
	if a.TargetBody, err = decodeUID(w.TargetBody); err != nil {
		return probe.Action{}, err
	}
	if a.TargetSystem, err = decodeUID(w.TargetSystem); err != nil {
		return probe.Action{}, err
	}
	if a.TargetProbe, err = decodeUID(w.TargetProbe); err != nil {
		return probe.Action{}, err
	}
	if w.TargetSector != nil {
		a.TargetSector = types.SectorCoord{X: w.TargetSector.X, Y: w.TargetSector.Y, Z: w.TargetSector.Z}
	}

	if w.TargetResource != "" {
		res, ok := types.ResourceFromName(w.TargetResource)
		if !ok {
			return probe.Action{}, errUnknownField("target_resource", w.TargetResource)
		}
		a.TargetResource = res
	}
	if w.StructureType != "" {
		st, ok := society.StructureTypeFromName(w.StructureType)
		if !ok {
			return probe.Action{}, errUnknownField("structure_type", w.StructureType)
		}
		a.StructureType = int(st)
	}
	if w.ResearchDomain != "" {
		dom, ok := types.TechDomainFromName(w.ResearchDomain)
		if !ok {
			return probe.Action{}, errUnknownField("research_domain", w.ResearchDomain)
		}
		a.ResearchDomain = dom
	}

	return a, nil
}

func encodeVec3(v types.Vec3) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y, "z": v.Z}
}

func encodeSector(c types.SectorCoord) map[string]any {
	return map[string]any{"x": c.X, "y": c.Y, "z": c.Z}
}

// encodeObservation renders one sim.Observation in wire form.
func encodeObservation(o sim.Observation) map[string]any {
	wireEvents := make([]map[string]any, 0, len(o.Events))
	for _, e := range o.Events {
		wireEvents = append(wireEvents, map[string]any{
			"type":        e.Type.String(),
			"subtype":     e.Subtype,
			"tick":        e.Tick,
			"severity":    e.Severity,
			"description": e.Description,
		})
	}
	return map[string]any{
		"probe_id":  o.ProbeID.String(),
		"status":    o.Status.String(),
		"position":  encodeVec3(o.Position),
		"system_id": o.SystemID.String(),
		"events":    wireEvents,
	}
}

// encodeProbe renders a probe's externally-visible state, as used in
// the "status" command's probes array.
func encodeProbe(p *probe.Probe) map[string]any {
	return map[string]any{
		"id":             p.ID.String(),
		"parent_id":      p.ParentID.String(),
		"generation":     p.Generation,
		"name":           p.Name,
		"status":         p.Status.String(),
		"location_type":  p.LocationType.String(),
		"position":       encodeVec3(p.Position),
		"sector":         encodeSector(p.Sector),
		"system_id":      p.SystemID.String(),
		"body_id":        p.BodyID.String(),
		"fuel_kg":        p.FuelKG,
		"energy_joules":  p.EnergyJoules,
		"hull_integrity": p.HullIntegrity,
	}
}

func errUnknownField(field, value string) error {
	return &decodeErr{field: field, value: value}
}

type decodeErr struct {
	field string
	value string
}

func (e *decodeErr) Error() string {
	return "pipeserver: unrecognized " + e.field + " value " + "\"" + e.value + "\""
}
