// Command universe runs the deterministic tick-driven galactic
// exploration simulation core. It replaces a federation HTTP daemon's
// ListenAndServe loop with three run modes: headless, visual, and pipe.
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitadek/universe/internal/config"
	"github.com/vitadek/universe/internal/identity"
	"github.com/vitadek/universe/internal/obserr"
	"github.com/vitadek/universe/internal/obslog"
	"github.com/vitadek/universe/internal/persist"
	"github.com/vitadek/universe/internal/persist/sqlitekv"
	"github.com/vitadek/universe/internal/pipeserver"
	"github.com/vitadek/universe/internal/probe"
	"github.com/vitadek/universe/internal/sim"
	"github.com/vitadek/universe/pkg/types"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, exitCode, handled := config.Parse(args)
	if handled {
		return int(exitCode)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(config.ExitError)
	}

	logger := obslog.New(os.Stderr, "info")

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var store *persist.Store
	if cfg.Pipe || cfg.SaveInterval > 0 || cfg.Resume {
		kv, err := sqlitekv.Open(cfg.DBPath)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.DBPath).Msg("open sqlite store")
			return int(config.ExitError)
		}
		defer kv.Close()
		store = persist.New(kv)
	}

	core := sim.New(seed)

	var id *identity.Identity
	if cfg.Resume && store != nil {
		restored, err := resumeFromStore(core, store, logger)
		if err != nil {
			logger.Error().Err(err).Msg("resume from save")
			return int(config.ExitError)
		}
		id = restored
	}

	if id == nil {
		var err error
		id, err = identity.New(core.Seed, time.Now().Unix())
		if err != nil {
			logger.Error().Err(err).Msg("generate run identity")
			return int(config.ExitError)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info().Msg("received shutdown signal")
		cancel()
	}()

	switch {
	case cfg.Pipe:
		return runPipe(ctx, core, store, id, logger)
	case cfg.Visual:
		return runVisual(ctx, core, store, id, cfg, logger)
	default:
		return runHeadless(ctx, core, store, id, cfg, logger)
	}
}

// resumeFromStore rebuilds core's probe table from store in
// sorted-key order and restores the signing identity persisted
// alongside it so a freshly
// restarted process can still verify (and keep extending) its own
// signed history instead of minting an unrelated keypair.
func resumeFromStore(core *sim.Core, store *persist.Store, logger zerolog.Logger) (*identity.Identity, error) {
	meta, ok, oerr := store.LoadMeta()
	if oerr != nil {
		return nil, oerr
	}
	if !ok {
		logger.Info().Msg("no existing save found, starting fresh")
		return nil, nil
	}

	keys, oerr := store.IterateProbeKeys()
	if oerr != nil {
		return nil, oerr
	}

	probes := make(map[types.UID]*probe.Probe, len(keys))
	for _, key := range keys {
		var p probe.Probe
		if oerr := store.LoadProbeBlobByKey(key, &p); oerr != nil {
			return nil, oerr
		}
		probes[p.ID] = &p
	}

	snapshot := sim.Snapshot{Tag: "__resume__", Tick: meta.Tick, Seed: meta.Seed, Probes: probes}
	// The stored checksum carries its writer's tag: "autosave" from the
	// --save-interval loop, "checkpoint" from the pipe command.
	autosaveSum := sim.Snapshot{Tag: "autosave", Tick: meta.Tick, Seed: meta.Seed, Probes: probes}.Checksum()
	checkpointSum := sim.Snapshot{Tag: "checkpoint", Tick: meta.Tick, Seed: meta.Seed, Probes: probes}.Checksum()
	if meta.Checksum != "" && meta.Checksum != autosaveSum && meta.Checksum != checkpointSum {
		return nil, obserr.StorageErr("resume: save meta checksum mismatch, store may be corrupted")
	}
	if meta.SignatureHex != "" && meta.PubKeyHex != "" {
		pub, perr := hex.DecodeString(meta.PubKeyHex)
		sig, serr := hex.DecodeString(meta.SignatureHex)
		if perr != nil || serr != nil || !identity.Verify(ed25519.PublicKey(pub), []byte(meta.Checksum), sig) {
			return nil, obserr.StorageErr("resume: save meta signature verification failed")
		}
	}

	core.Seed = meta.Seed
	core.Restore(snapshot)
	logger.Info().Uint64("tick", meta.Tick).Int("probes", len(probes)).Msg("resumed from save")

	var id *identity.Identity
	if meta.PubKeyHex != "" && meta.PrivKeyHex != "" {
		restored, err := identity.Restore(meta.PubKeyHex, meta.PrivKeyHex, meta.Seed, 0)
		if err != nil {
			return nil, obserr.StorageErr("resume: restore identity: %v", err)
		}
		id = restored
	}
	return id, nil
}

func runPipe(ctx context.Context, core *sim.Core, store *persist.Store, id *identity.Identity, logger zerolog.Logger) int {
	server := pipeserver.New(core, store, id, logger)
	if err := server.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("pipe server exited")
		return int(config.ExitError)
	}
	return int(config.ExitOK)
}

func runHeadless(ctx context.Context, core *sim.Core, store *persist.Store, id *identity.Identity, cfg *config.Config, logger zerolog.Logger) int {
	maxTicks := cfg.Ticks
	deadline := deadlineFor(cfg)
	yearsLimit := cfg.SimYears * sim.TicksPerSimYear

	for maxTicks == 0 || core.TickNum < maxTicks {
		select {
		case <-ctx.Done():
			logger.Info().Uint64("tick", core.TickNum).Msg("headless run canceled")
			return int(config.ExitOK)
		default:
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			logger.Info().Uint64("tick", core.TickNum).Msg("headless run hit wall-clock limit")
			break
		}
		if yearsLimit > 0 && core.TickNum >= yearsLimit {
			logger.Info().Uint64("tick", core.TickNum).Msg("headless run hit simulated-years limit")
			break
		}

		core.Tick(nil)

		if store != nil && cfg.SaveInterval > 0 && core.TickNum%cfg.SaveInterval == 0 {
			if err := autosave(core, store, id); err != nil {
				logger.Error().Str("err", err.Message).Msg("autosave failed")
			}
		}
	}

	logger.Info().Uint64("tick", core.TickNum).Msg("headless run complete")
	return int(config.ExitOK)
}

func runVisual(ctx context.Context, core *sim.Core, store *persist.Store, id *identity.Identity, cfg *config.Config, logger zerolog.Logger) int {
	// Terminal/graphical rendering is out of scope for this core;
	// --visual still runs the same deterministic loop as --headless so
	// the flag is accepted rather than rejected.
	logger.Warn().Msg("--visual has no renderer in this build; running headless loop")
	return runHeadless(ctx, core, store, id, cfg, logger)
}

func deadlineFor(cfg *config.Config) time.Time {
	if cfg.Hours == 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(cfg.Hours) * time.Hour)
}

func autosave(core *sim.Core, store *persist.Store, id *identity.Identity) *obserr.Error {
	ids := core.SortedProbeIDs()
	checksum := sim.Snapshot{Tag: "autosave", Tick: core.TickNum, Seed: core.Seed, Probes: core.Probes}.Checksum()
	meta := persist.Meta{
		Seed:              core.Seed,
		Tick:              core.TickNum,
		GenerationVersion: sim.GenerationVersion,
		Checksum:          checksum,
	}
	if id != nil {
		meta.PubKeyHex = id.PublicKeyHex()
		meta.PrivKeyHex = id.PrivateKeyHex()
		meta.SignatureHex = hex.EncodeToString(id.Sign([]byte(checksum)))
	}
	if oerr := store.SaveMeta(meta); oerr != nil {
		return oerr
	}
	for _, probeID := range ids {
		if oerr := store.SaveProbeBlob(probeID, core.Probes[probeID]); oerr != nil {
			return oerr
		}
	}
	return nil
}
