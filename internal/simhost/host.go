// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package simhost

import (
	"fmt"

	"github.com/MKhiriev/go-client-bridge/internal/datagram"
	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/protocol"
)

const defaultChunkSize = 256

// Host is a single-client scripted host.
type Host struct {
	log *logger.Logger

	state       []byte
	stateTickID uint32
	chunkSize   int

	orderedOut datagram.OrderedOut
	orderedIn  datagram.OrderedIn

	// echoedClientTime is the most recent client clock stamp, echoed back
	// on every response so the client can measure round trips.
	echoedClientTime uint16

	authoritative [][]byte
	firstAuthTick uint32
}

// Option configures a Host.
type Option func(*Host)

// WithChunkSize overrides the state transfer chunk size.
func WithChunkSize(n int) Option {
	return func(h *Host) {
		if n > 0 {
			h.chunkSize = n
		}
	}
}

// New returns a host serving the given authoritative state captured at
// stateTickID.
func New(state []byte, stateTickID uint32, log *logger.Logger, opts ...Option) *Host {
	h := &Host{
		log:           log,
		state:         state,
		stateTickID:   stateTickID,
		chunkSize:     defaultChunkSize,
		firstAuthTick: stateTickID,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleDatagram consumes one client datagram and returns the host's
// response datagrams, if any.
func (h *Host) HandleDatagram(dgram []byte) ([][]byte, error) {
	header, payload, err := datagram.Parse(dgram)
	if err != nil {
		return nil, fmt.Errorf("error parsing client datagram: %w", err)
	}

	if err := h.orderedIn.Verify(header.Sequence); err != nil {
		h.log.Debug().Err(err).Msg("host dropped client datagram")
		return nil, nil
	}
	h.echoedClientTime = header.ClientTime

	cmd, err := protocol.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("error decoding client command: %w", err)
	}

	switch cmd := cmd.(type) {
	case protocol.ConnectRequest:
		return h.respond(protocol.ConnectAccepted{ResponseToRequest: cmd.RequestID})
	case protocol.DownloadStateRequest:
		return h.stateChunks(cmd.RequestID)
	case protocol.StepsRequest:
		return h.confirmSteps(cmd)
	default:
		return nil, fmt.Errorf("host received unexpected command type %d", cmd.CommandType())
	}
}

// AuthoritativeCount returns how many steps the host has confirmed.
func (h *Host) AuthoritativeCount() int {
	return len(h.authoritative)
}

func (h *Host) stateChunks(requestID uint8) ([][]byte, error) {
	var commands []protocol.Command

	total := len(h.state)
	for offset, index := 0, uint32(0); ; index++ {
		end := min(offset+h.chunkSize, total)
		chunk := protocol.StateChunk{
			RequestID: requestID,
			TickID:    h.stateTickID,
			Index:     index,
			Last:      end == total,
			Payload:   h.state[offset:end],
		}
		commands = append(commands, chunk)
		if chunk.Last {
			break
		}
		offset = end
	}

	return h.respond(commands...)
}

// confirmSteps echoes the client's predicted steps back as authoritative,
// starting where the client's ack left off.
func (h *Host) confirmSteps(cmd protocol.StepsRequest) ([][]byte, error) {
	for i, step := range cmd.Steps {
		tick := cmd.FirstTickID + uint32(i)
		if tick == h.firstAuthTick+uint32(len(h.authoritative)) {
			h.authoritative = append(h.authoritative, step)
		}
	}

	if cmd.WaitingForTickID < h.firstAuthTick {
		return nil, fmt.Errorf("client acked tick %d before the session start %d", cmd.WaitingForTickID, h.firstAuthTick)
	}

	available := h.firstAuthTick + uint32(len(h.authoritative))
	if cmd.WaitingForTickID >= available {
		return nil, nil
	}

	from := cmd.WaitingForTickID - h.firstAuthTick
	return h.respond(protocol.AuthoritativeSteps{
		FromTickID: cmd.WaitingForTickID,
		Steps:      h.authoritative[from:],
	})
}

func (h *Host) respond(commands ...protocol.Command) ([][]byte, error) {
	datagrams := make([][]byte, 0, len(commands))
	for _, cmd := range commands {
		payload, err := protocol.Encode(cmd)
		if err != nil {
			return nil, fmt.Errorf("error encoding host command: %w", err)
		}

		header := datagram.Header{
			Sequence:   h.orderedOut.Stamp(),
			ClientTime: h.echoedClientTime,
		}
		dgram := header.Append(make([]byte, 0, datagram.HeaderSize+len(payload)))
		dgram = append(dgram, payload...)
		datagrams = append(datagrams, dgram)
	}

	return datagrams, nil
}
