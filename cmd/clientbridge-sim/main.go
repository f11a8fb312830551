// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/go-client-bridge/bridge"
	"github.com/MKhiriev/go-client-bridge/internal/config"
	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/simhost"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// stateTick is the tick the scripted host captured its state at.
const stateTick uint32 = 10

func main() {
	printBuildInfo()

	log := logger.NewLogger("clientbridge-sim")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	bridge.SetLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("simulation error")
	}
}

// run drives one client session against an in-process scripted host on a
// synthetic clock: no sockets, no sleeping, just the boundary surface
// exercised end to end.
func run(cfg *config.Config, log *logger.Logger) error {
	state := make([]byte, cfg.Host.StateSize)
	for i := range state {
		state[i] = byte(i)
	}
	host := simhost.New(state, stateTick, log, simhost.WithChunkSize(cfg.Host.ChunkSize))

	handle := bridge.ClientNew(0)
	if handle == bridge.InvalidHandle {
		return fmt.Errorf("error creating client")
	}
	defer bridge.ClientFree(handle)

	var applied uint64
	var dropped uint64
	inGame := false
	nextPushTick := stateTick

	bridge.ClientSetCallback(handle, bridge.CallbackConnected, func(param uint64) {
		log.Info().Uint64("request", param).Msg("connected")
	})
	bridge.ClientSetCallback(handle, bridge.CallbackStateReceived, func(param uint64) {
		log.Info().Uint64("octets", param).Msg("state downloaded")
		inGame = true
	})
	bridge.ClientSetCallback(handle, bridge.CallbackAuthoritativeStep, func(param uint64) {
		applied++
	})
	bridge.ClientSetCallback(handle, bridge.CallbackDatagramDropped, func(param uint64) {
		dropped++
	})

	tick := uint64(cfg.Sim.TickDuration.Milliseconds())
	end := uint64(cfg.Sim.RunFor.Milliseconds())

	for now := uint64(0); now <= end; now += tick {
		if inGame {
			step := fmt.Appendf(nil, "step-%d", nextPushTick)
			if rc := bridge.ClientPushStep(handle, nextPushTick, step); rc != bridge.StatusOK {
				return fmt.Errorf("error pushing step %d: status %d", nextPushTick, rc)
			}
			nextPushTick++
		}

		outgoing, rc := bridge.ClientOutgoing(handle, now)
		if rc != bridge.StatusOK {
			return fmt.Errorf("error collecting outgoing datagrams: status %d", rc)
		}

		for _, dgram := range outgoing {
			responses, err := host.HandleDatagram(dgram)
			if err != nil {
				return fmt.Errorf("host error: %w", err)
			}
			for _, response := range responses {
				if rc := bridge.ClientReceive(handle, now, response); rc != bridge.StatusOK {
					return fmt.Errorf("error receiving datagram: status %d", rc)
				}
			}
		}

		if rc := bridge.ClientUpdate(handle, now); rc != bridge.StatusOK {
			return fmt.Errorf("error updating client: status %d", rc)
		}
	}

	log.Info().
		Uint64("applied", applied).
		Uint64("dropped", dropped).
		Int("confirmed", host.AuthoritativeCount()).
		Msg("simulation finished")

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
