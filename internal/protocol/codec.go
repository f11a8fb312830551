// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrEmptyPayload is returned when a payload has no command type octet.
	ErrEmptyPayload = errors.New("empty command payload")

	// ErrUnknownCommand is returned when the type octet is not part of the
	// command set.
	ErrUnknownCommand = errors.New("unknown command type")
)

// Encode serializes cmd into a datagram payload: one type octet followed by
// the CBOR body.
func Encode(cmd Command) ([]byte, error) {
	body, err := cbor.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("error encoding command %d: %w", cmd.CommandType(), err)
	}

	payload := make([]byte, 0, 1+len(body))
	payload = append(payload, byte(cmd.CommandType()))
	payload = append(payload, body...)

	return payload, nil
}

// Decode parses a payload produced by Encode and returns the concrete
// command value.
func Decode(payload []byte) (Command, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	commandType := Type(payload[0])
	body := payload[1:]

	var (
		cmd Command
		err error
	)
	switch commandType {
	case TypeConnectRequest:
		var c ConnectRequest
		err = cbor.Unmarshal(body, &c)
		cmd = c
	case TypeDownloadStateRequest:
		var c DownloadStateRequest
		err = cbor.Unmarshal(body, &c)
		cmd = c
	case TypeStepsRequest:
		var c StepsRequest
		err = cbor.Unmarshal(body, &c)
		cmd = c
	case TypeConnectAccepted:
		var c ConnectAccepted
		err = cbor.Unmarshal(body, &c)
		cmd = c
	case TypeStateChunk:
		var c StateChunk
		err = cbor.Unmarshal(body, &c)
		cmd = c
	case TypeAuthoritativeSteps:
		var c AuthoritativeSteps
		err = cbor.Unmarshal(body, &c)
		cmd = c
	default:
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownCommand, payload[0])
	}

	if err != nil {
		return nil, fmt.Errorf("error decoding command %d: %w", commandType, err)
	}

	return cmd, nil
}
