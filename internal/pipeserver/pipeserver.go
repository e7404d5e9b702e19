package pipeserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/vitadek/universe/internal/identity"
	"github.com/vitadek/universe/internal/persist"
	"github.com/vitadek/universe/internal/sim"
)

const (
	defaultCommandsPerSec = 200
	defaultBurst          = 400
	defaultScanResults    = 30
)

// Server drives the line-oriented JSON command protocol over a
// sim.Core, generalized from a stdin-scanning
// loop (bufio.Scanner reading one line at a time, dispatching on a
// leading token) generalized from human console commands to this
// machine line-protocol. Throughput is bounded by
// a golang.org/x/time/rate limiter, the same dependency and per-source
// shape used elsewhere in the corpus for HTTP rate limiting.
type Server struct {
	Core      *sim.Core
	Store     *persist.Store // nil unless --db was configured; backs "checkpoint" only
	Identity  *identity.Identity
	SessionID uuid.UUID
	Log       zerolog.Logger
	Limiter   *rate.Limiter

	snapshots map[string]sim.Snapshot
	config    map[string]any
}

// New builds a Server wrapping core. store may be nil if --db
// persistence was not configured. id signs save-command payloads so a
// later load can detect tampering; it is never required to be present.
// Each server gets a random session ID, bound into its logger context
// so every line the server logs carries it, letting a pipe client's
// log lines be correlated to the right process across restarts even
// though the simulation seed may repeat.
func New(core *sim.Core, store *persist.Store, id *identity.Identity, logger zerolog.Logger) *Server {
	sessionID := uuid.New()
	logger = logger.With().Str("session_id", sessionID.String()).Logger()
	return &Server{
		Core:      core,
		Store:     store,
		Identity:  id,
		SessionID: sessionID,
		Log:       logger,
		Limiter:   rate.NewLimiter(rate.Limit(defaultCommandsPerSec), defaultBurst),
		snapshots: make(map[string]sim.Snapshot),
		config:    make(map[string]any),
	}
}

// Run reads one JSON command per line from r and writes one JSON
// response per line to w until EOF, a "quit" command, or ctx is
// canceled.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := s.Limiter.Wait(ctx); err != nil {
			return err
		}

		resp, quit := s.handleLine(line)
		encoded, err := json.Marshal(resp)
		if err != nil {
			s.Log.Error().Err(err).Msg("pipeserver: failed to encode response")
			continue
		}
		if _, err := out.Write(encoded); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return out.Flush()
}

func (s *Server) handleLine(line []byte) (map[string]any, bool) {
	var envelope struct {
		Cmd string `json:"cmd"`
	}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return errResponse("malformed json: " + err.Error()), false
	}

	switch envelope.Cmd {
	case "tick":
		return s.cmdTick(line), false
	case "status":
		return s.cmdStatus(), false
	case "metrics":
		return s.cmdMetrics(), false
	case "inject":
		return s.cmdInject(line), false
	case "snapshot":
		return s.cmdSnapshot(line), false
	case "restore":
		return s.cmdRestore(line), false
	case "config":
		return s.cmdConfig(line), false
	case "save":
		return s.cmdSave(line), false
	case "load":
		return s.cmdLoad(line), false
	case "checkpoint":
		return s.cmdCheckpoint(), false
	case "scan":
		return s.cmdScan(line), false
	case "scenario":
		return s.cmdScenario(line), false
	case "lineage":
		return s.cmdLineage(), false
	case "history":
		return s.cmdHistory(line), false
	case "quit":
		return map[string]any{"ok": true}, true
	case "":
		return errResponse("missing \"cmd\" field"), false
	default:
		return errResponse("unknown command: " + envelope.Cmd), false
	}
}

func errResponse(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

func okResponse(extra map[string]any) map[string]any {
	resp := map[string]any{"ok": true}
	for k, v := range extra {
		resp[k] = v
	}
	return resp
}
