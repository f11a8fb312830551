// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrTimeMovedBackwards indicates an update timestamp earlier than the
	// previous one. Timestamps are caller data and must not run backwards.
	ErrTimeMovedBackwards = errors.New("update time moved backwards")

	// ErrWrongPhase indicates a command or operation that is not valid in
	// the client's current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrConnectResponseWithoutRequest indicates a ConnectAccepted arriving
	// before any ConnectRequest was sent.
	ErrConnectResponseWithoutRequest = errors.New("connect response without request")

	// ErrWrongConnectRequestID indicates a ConnectAccepted answering a
	// request this client never issued.
	ErrWrongConnectRequestID = errors.New("connect response for unknown request")

	// ErrWrongDownloadRequestID indicates a StateChunk for a download this
	// client never requested.
	ErrWrongDownloadRequestID = errors.New("state chunk for unknown download request")

	// ErrUnexpectedChunk indicates a StateChunk whose index does not match
	// the next expected chunk.
	ErrUnexpectedChunk = errors.New("state chunk out of order")

	// ErrStepGap indicates authoritative steps starting beyond the tick the
	// client is waiting for.
	ErrStepGap = errors.New("gap in authoritative steps")

	// ErrPredictionQueueFull indicates the predicted step queue has reached
	// its cap; the caller should update and resend before predicting more.
	ErrPredictionQueueFull = errors.New("predicted step queue is full")

	// ErrUnexpectedTickID indicates a predicted step that does not directly
	// follow the previously pushed one.
	ErrUnexpectedTickID = errors.New("predicted step tick out of order")

	// ErrUnexpectedCommand indicates a wire command the client never
	// expects to receive, such as a client-to-host command.
	ErrUnexpectedCommand = errors.New("unexpected command")
)
