// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

// Type identifies a command on the wire.
type Type uint8

const (
	// Client to host.
	TypeConnectRequest Type = iota + 1
	TypeDownloadStateRequest
	TypeStepsRequest

	// Host to client.
	TypeConnectAccepted
	TypeStateChunk
	TypeAuthoritativeSteps
)

// Command is implemented by every wire command.
type Command interface {
	CommandType() Type
}

// Version is a protocol or application version triple.
type Version struct {
	Major uint16 `cbor:"1,keyasint"`
	Minor uint16 `cbor:"2,keyasint"`
	Patch uint16 `cbor:"3,keyasint"`
}

// ConnectRequest asks the host to accept this client session. The host must
// echo RequestID in its ConnectAccepted so late responses to an abandoned
// request can be told apart.
type ConnectRequest struct {
	RequestID       uint8   `cbor:"1,keyasint"`
	ProtocolVersion Version `cbor:"2,keyasint"`
	AppVersion      Version `cbor:"3,keyasint"`
}

func (ConnectRequest) CommandType() Type { return TypeConnectRequest }

// ConnectAccepted confirms a ConnectRequest.
type ConnectAccepted struct {
	ResponseToRequest uint8 `cbor:"1,keyasint"`
}

func (ConnectAccepted) CommandType() Type { return TypeConnectAccepted }

// DownloadStateRequest asks the host to transfer the complete authoritative
// state.
type DownloadStateRequest struct {
	RequestID uint8 `cbor:"1,keyasint"`
}

func (DownloadStateRequest) CommandType() Type { return TypeDownloadStateRequest }

// StateChunk carries one piece of the authoritative state. Chunks are
// numbered from zero; Last marks the final chunk. TickID is the simulation
// tick the transferred state was captured at.
type StateChunk struct {
	RequestID uint8  `cbor:"1,keyasint"`
	TickID    uint32 `cbor:"2,keyasint"`
	Index     uint32 `cbor:"3,keyasint"`
	Last      bool   `cbor:"4,keyasint"`
	Payload   []byte `cbor:"5,keyasint"`
}

func (StateChunk) CommandType() Type { return TypeStateChunk }

// StepsRequest acknowledges received authoritative steps and uploads the
// client's queued predicted steps starting at FirstTickID.
type StepsRequest struct {
	WaitingForTickID uint32   `cbor:"1,keyasint"`
	FirstTickID      uint32   `cbor:"2,keyasint"`
	Steps            [][]byte `cbor:"3,keyasint"`
}

func (StepsRequest) CommandType() Type { return TypeStepsRequest }

// AuthoritativeSteps delivers the host-confirmed steps starting at
// FromTickID.
type AuthoritativeSteps struct {
	FromTickID uint32   `cbor:"1,keyasint"`
	Steps      [][]byte `cbor:"2,keyasint"`
}

func (AuthoritativeSteps) CommandType() Type { return TypeAuthoritativeSteps }
