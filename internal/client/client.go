// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-client-bridge/internal/datagram"
	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/metrics"
	"github.com/MKhiriev/go-client-bridge/internal/protocol"
	"github.com/MKhiriev/go-client-bridge/internal/timetick"
)

// protocolVersion is the sync protocol revision this client speaks.
var protocolVersion = protocol.Version{Major: 0, Minor: 0, Patch: 5}

// Phase describes where the client is in its session lifecycle.
type Phase uint8

const (
	// PhaseConnecting: repeating the connect request until the host accepts.
	PhaseConnecting Phase = iota
	// PhaseDownloadingState: transferring the authoritative state.
	PhaseDownloadingState
	// PhaseInGame: exchanging predicted and authoritative steps.
	PhaseInGame
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseDownloadingState:
		return "downloading-state"
	case PhaseInGame:
		return "in-game"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Event identifies a progress notification the client reports while
// processing. Event values double as callback slot indices at the bridge
// boundary.
type Event uint8

const (
	// EventConnected fires once when the host accepts the session. The
	// parameter is the accepted request id.
	EventConnected Event = iota
	// EventStateReceived fires once when the authoritative state download
	// completes. The parameter is the state size in octets.
	EventStateReceived
	// EventAuthoritativeStep fires for every applied authoritative step.
	// The parameter is the step's tick id.
	EventAuthoritativeStep
	// EventDatagramDropped fires when an incoming datagram is rejected as a
	// duplicate or reordered. The parameter is the rejected sequence number.
	EventDatagramDropped

	// NumEvents is the number of defined events.
	NumEvents = 4
)

// NotifyFunc receives progress events. It is invoked synchronously from
// Update and Receive and must not call back into the client.
type NotifyFunc func(event Event, param uint64)

const (
	defaultTickDuration       = timetick.Millis(16)
	defaultMaxPredictionCount = 10
	maxTicksPerUpdate         = 4
)

// Client is a single session, exclusively owned by its creator. It is not
// safe for concurrent use; the bridge facade serializes access through its
// handle store.
type Client struct {
	log       *logger.Logger
	sessionID uuid.UUID
	notify    NotifyFunc

	phase              Phase
	appVersion         protocol.Version
	connectRequestID   uint8
	sentConnectRequest bool

	downloadRequestID uint8
	nextChunkIndex    uint32
	stateBuf          []byte
	state             []byte
	stateTickID       uint32

	// applyTickID is the next authoritative tick to apply; steps received
	// but not yet applied wait in pendingAuthSteps.
	applyTickID      uint32
	pendingAuthSteps [][]byte
	appliedSteps     uint64

	predicted          [][]byte
	firstPredictedTick uint32
	maxPredictionCount int

	tickDuration       timetick.Millis
	authTick           timetick.TimeTick
	predictionTick     timetick.TimeTick
	authFactor         timetick.RangeToFactor[int, float64]
	predictionFactor   timetick.RangeToFactor[int, float64]
	canSendPredicted   bool
	lastNeedPrediction uint16

	metrics    *metrics.Network
	orderedIn  datagram.OrderedIn
	orderedOut datagram.OrderedOut

	lastUpdateAt timetick.Millis
}

// Option configures a Client created by New.
type Option func(*Client)

// WithTickDuration overrides the default 16 ms simulation tick.
func WithTickDuration(d timetick.Millis) Option {
	return func(c *Client) {
		if d > 0 {
			c.tickDuration = d
		}
	}
}

// WithMaxPredictionCount overrides the cap on queued predicted steps.
func WithMaxPredictionCount(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPredictionCount = n
		}
	}
}

// WithNotify registers the progress event sink.
func WithNotify(fn NotifyFunc) Option {
	return func(c *Client) {
		c.notify = fn
	}
}

// WithAppVersion sets the application version sent in the connect request.
func WithAppVersion(v protocol.Version) Option {
	return func(c *Client) {
		c.appVersion = v
	}
}

// New constructs a client seeded with the current time in milliseconds.
// The session starts in PhaseConnecting.
func New(now timetick.Millis, log *logger.Logger, opts ...Option) *Client {
	sessionID := uuid.New()

	c := &Client{
		sessionID:          sessionID,
		phase:              PhaseConnecting,
		appVersion:         protocol.Version{Major: 0, Minor: 1, Patch: 0},
		connectRequestID:   sessionID[0],
		downloadRequestID:  0x99,
		maxPredictionCount: defaultMaxPredictionCount,
		tickDuration:       defaultTickDuration,
		lastUpdateAt:       now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = &logger.Logger{Logger: log.With().Str("session", sessionID.String()).Logger()}
	c.authTick = timetick.New(now, c.tickDuration, maxTicksPerUpdate)
	c.predictionTick = timetick.New(now, c.tickDuration, maxTicksPerUpdate)
	c.authFactor = timetick.NewRangeToFactor(2, 5, 0.9, 1.0, 2.0)
	c.predictionFactor = timetick.NewRangeToFactor(-1, 3, 0.85, 1.0, 2.0)
	c.metrics = metrics.NewNetwork(now, c.log)

	c.log.Debug().Stringer("phase", c.phase).Msg("client created")

	return c
}

// Update advances the session to the given absolute time: recomputes traffic
// rates, applies pending authoritative steps at the paced tick rate, and
// adapts the prediction tick rate to queue depth and latency.
//
// Timestamps must not run backwards; overlapping or out-of-order times are a
// caller error detected here.
func (c *Client) Update(now timetick.Millis) error {
	if now < c.lastUpdateAt {
		return fmt.Errorf("%w: %d after %d", ErrTimeMovedBackwards, now, c.lastUpdateAt)
	}
	c.lastUpdateAt = now

	c.metrics.Update(now)

	// Pace authoritative application relative to buffer depth.
	factor := c.authFactor.Factor(len(c.pendingAuthSteps))
	c.authTick.SetTickDuration(scaleDuration(c.tickDuration, factor))
	ticks := int(c.authTick.Ticks(now))
	apply := min(ticks, len(c.pendingAuthSteps))
	for i := 0; i < apply; i++ {
		tick := c.applyTickID
		c.applyTickID++
		c.appliedSteps++
		c.fire(EventAuthoritativeStep, uint64(tick))
	}
	if apply > 0 {
		c.pendingAuthSteps = slices.Delete(c.pendingAuthSteps, 0, apply)
		c.authTick.Performed(uint16(apply))
		c.log.Trace().Int("applied", apply).Uint32("next_tick", c.applyTickID).Msg("applied authoritative steps")
	}

	if c.phase == PhaseInGame && !c.canSendPredicted {
		c.predictionTick.Reset(now)
		c.canSendPredicted = true
	}

	if c.canSendPredicted {
		c.adjustPredictionTicker()
		c.lastNeedPrediction = c.predictionTick.Ticks(now)
		if len(c.predicted) >= c.maxPredictionCount {
			c.lastNeedPrediction = 0
			c.predictionTick.Reset(now)
		}
	}

	return nil
}

// OutgoingDatagrams serializes the commands the current phase calls for and
// returns them as wire-ready datagrams. The caller owns delivery.
func (c *Client) OutgoingDatagrams(now timetick.Millis) ([][]byte, error) {
	var cmd protocol.Command
	switch c.phase {
	case PhaseConnecting:
		cmd = protocol.ConnectRequest{
			RequestID:       c.connectRequestID,
			ProtocolVersion: protocolVersion,
			AppVersion:      c.appVersion,
		}
		c.sentConnectRequest = true
	case PhaseDownloadingState:
		cmd = protocol.DownloadStateRequest{RequestID: c.downloadRequestID}
	case PhaseInGame:
		cmd = protocol.StepsRequest{
			WaitingForTickID: c.receivedUpTo(),
			FirstTickID:      c.firstPredictedTick,
			Steps:            slices.Clone(c.predicted),
		}
	}

	payload, err := protocol.Encode(cmd)
	if err != nil {
		return nil, fmt.Errorf("error encoding outgoing command: %w", err)
	}

	header := datagram.Header{
		Sequence:   c.orderedOut.Stamp(),
		ClientTime: uint16(now),
	}
	dgram := header.Append(make([]byte, 0, datagram.HeaderSize+len(payload)))
	dgram = append(dgram, payload...)

	datagrams := [][]byte{dgram}
	c.metrics.Sent(datagrams)
	c.log.Trace().Stringer("phase", c.phase).Int("octets", len(dgram)).Msg("outgoing datagram")

	return datagrams, nil
}

// Receive processes one incoming datagram: verifies ordering, records a
// latency sample from the echoed client time, and dispatches the contained
// command.
func (c *Client) Receive(now timetick.Millis, dgram []byte) error {
	c.metrics.Received(dgram)

	header, payload, err := datagram.Parse(dgram)
	if err != nil {
		return fmt.Errorf("error parsing datagram: %w", err)
	}

	if err := c.orderedIn.Verify(header.Sequence); err != nil {
		c.fire(EventDatagramDropped, uint64(header.Sequence))
		c.log.Debug().Err(err).Msg("dropped datagram")
		return fmt.Errorf("error verifying datagram order: %w", err)
	}

	c.metrics.AddLatency(uint32(uint16(now) - header.ClientTime))

	cmd, err := protocol.Decode(payload)
	if err != nil {
		return fmt.Errorf("error decoding incoming command: %w", err)
	}

	return c.receiveCommand(cmd)
}

// PushPredictedStep queues a locally predicted step for upload. Steps must be
// pushed with consecutive tick ids starting at the state's tick.
func (c *Client) PushPredictedStep(tickID uint32, step []byte) error {
	if c.phase != PhaseInGame {
		return fmt.Errorf("%w: %v", ErrWrongPhase, c.phase)
	}
	if len(c.predicted) >= c.maxPredictionCount {
		return ErrPredictionQueueFull
	}
	if expected := c.firstPredictedTick + uint32(len(c.predicted)); tickID != expected {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedTickID, tickID, expected)
	}

	c.predicted = append(c.predicted, step)

	return nil
}

// Phase returns the current session phase.
func (c *Client) Phase() Phase { return c.phase }

// SessionID returns the log-correlation id of this session.
func (c *Client) SessionID() uuid.UUID { return c.sessionID }

// State returns the downloaded authoritative state, or nil before the
// download completes.
func (c *Client) State() []byte { return c.state }

// StateTickID returns the tick the downloaded state was captured at.
func (c *Client) StateTickID() uint32 { return c.stateTickID }

// AppliedSteps returns how many authoritative steps have been applied.
func (c *Client) AppliedSteps() uint64 { return c.appliedSteps }

// NeedPredictionCount returns how many predicted steps the last update asked
// the embedding application to produce.
func (c *Client) NeedPredictionCount() uint16 { return c.lastNeedPrediction }

// NextPredictedTickID returns the tick id the next pushed step must carry.
func (c *Client) NextPredictedTickID() uint32 {
	return c.firstPredictedTick + uint32(len(c.predicted))
}

// Metrics returns a snapshot of the session's traffic metrics.
func (c *Client) Metrics() metrics.Combined { return c.metrics.Snapshot() }

func (c *Client) receiveCommand(cmd protocol.Command) error {
	switch cmd := cmd.(type) {
	case protocol.ConnectAccepted:
		return c.onConnectAccepted(cmd)
	case protocol.StateChunk:
		return c.onStateChunk(cmd)
	case protocol.AuthoritativeSteps:
		return c.onAuthoritativeSteps(cmd)
	default:
		return fmt.Errorf("%w: type %d", ErrUnexpectedCommand, cmd.CommandType())
	}
}

func (c *Client) onConnectAccepted(cmd protocol.ConnectAccepted) error {
	if c.phase != PhaseConnecting {
		// The host resends its accept until it sees a download request.
		return nil
	}
	if !c.sentConnectRequest {
		return ErrConnectResponseWithoutRequest
	}
	if cmd.ResponseToRequest != c.connectRequestID {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongConnectRequestID, cmd.ResponseToRequest, c.connectRequestID)
	}

	c.phase = PhaseDownloadingState
	c.log.Debug().Msg("connected")
	c.fire(EventConnected, uint64(cmd.ResponseToRequest))

	return nil
}

func (c *Client) onStateChunk(cmd protocol.StateChunk) error {
	if c.phase != PhaseDownloadingState {
		// Late chunks after a completed download carry nothing new.
		return nil
	}
	if cmd.RequestID != c.downloadRequestID {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongDownloadRequestID, cmd.RequestID, c.downloadRequestID)
	}
	if cmd.Index != c.nextChunkIndex {
		return fmt.Errorf("%w: got index %d, want %d", ErrUnexpectedChunk, cmd.Index, c.nextChunkIndex)
	}

	c.stateBuf = append(c.stateBuf, cmd.Payload...)
	c.nextChunkIndex++

	if cmd.Last {
		c.state = c.stateBuf
		c.stateBuf = nil
		c.stateTickID = cmd.TickID
		c.applyTickID = cmd.TickID
		c.firstPredictedTick = cmd.TickID
		c.phase = PhaseInGame
		c.log.Debug().Int("octets", len(c.state)).Uint32("tick", c.stateTickID).Msg("state downloaded")
		c.fire(EventStateReceived, uint64(len(c.state)))
	}

	return nil
}

func (c *Client) onAuthoritativeSteps(cmd protocol.AuthoritativeSteps) error {
	if c.phase != PhaseInGame {
		return fmt.Errorf("%w: %v", ErrWrongPhase, c.phase)
	}

	expected := c.receivedUpTo()
	if cmd.FromTickID > expected {
		return fmt.Errorf("%w: steps start at %d, waiting for %d", ErrStepGap, cmd.FromTickID, expected)
	}

	skip := expected - cmd.FromTickID
	if uint32(len(cmd.Steps)) <= skip {
		return nil
	}

	tick := expected
	for _, step := range cmd.Steps[skip:] {
		c.pendingAuthSteps = append(c.pendingAuthSteps, step)

		// An authoritative step supersedes the predicted step for the
		// same tick.
		if len(c.predicted) > 0 && c.firstPredictedTick == tick {
			c.predicted = slices.Delete(c.predicted, 0, 1)
			c.firstPredictedTick++
		}
		tick++
	}

	return nil
}

// receivedUpTo returns the first authoritative tick the client has not yet
// received, which is what StepsRequest acknowledges.
func (c *Client) receivedUpTo() uint32 {
	return c.applyTickID + uint32(len(c.pendingAuthSteps))
}

func (c *Client) adjustPredictionTicker() {
	optimal := c.optimalPredictionTickCount()
	delta := len(c.predicted) - optimal
	factor := c.predictionFactor.Factor(delta)
	c.predictionTick.SetTickDuration(scaleDuration(c.tickDuration, factor))
}

// optimalPredictionTickCount sizes the predicted queue so it roughly covers
// one round trip plus a small safety margin.
func (c *Client) optimalPredictionTickCount() int {
	snapshot := c.metrics.Snapshot()
	latency := snapshot.Latency.Avg()

	return int(latency/float32(c.tickDuration)) + 2
}

func (c *Client) fire(event Event, param uint64) {
	if c.notify != nil {
		c.notify(event, param)
	}
}

func scaleDuration(d timetick.Millis, factor float64) timetick.Millis {
	scaled := timetick.Millis(float64(d) * factor)
	if scaled == 0 {
		scaled = 1
	}

	return scaled
}
