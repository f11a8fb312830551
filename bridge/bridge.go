// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"sync/atomic"

	"github.com/MKhiriev/go-client-bridge/internal/client"
	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/registry"
	"github.com/MKhiriev/go-client-bridge/internal/timetick"
)

// NumCallbackSlots is how many notification callbacks each client carries.
// Slot indices correspond to client.Event values.
const NumCallbackSlots = client.NumEvents

// Callback slots an embedder can register.
const (
	// CallbackConnected fires once when the host accepts the session.
	CallbackConnected = uint32(client.EventConnected)
	// CallbackStateReceived fires once when the authoritative state
	// download completes; the parameter is the state size in octets.
	CallbackStateReceived = uint32(client.EventStateReceived)
	// CallbackAuthoritativeStep fires per applied authoritative step; the
	// parameter is the step's tick id.
	CallbackAuthoritativeStep = uint32(client.EventAuthoritativeStep)
	// CallbackDatagramDropped fires when an incoming datagram is rejected;
	// the parameter is the rejected sequence number.
	CallbackDatagramDropped = uint32(client.EventDatagramDropped)
)

// CallbackFunc receives a progress notification with an event-specific
// parameter. Callbacks run synchronously inside ClientUpdate/ClientReceive
// while the registry lock is held and must not call back into this package.
type CallbackFunc func(param uint64)

// entry pairs a client with its registered boundary callbacks.
type entry struct {
	client    *client.Client
	callbacks [NumCallbackSlots]CallbackFunc
}

func (e *entry) dispatch(event client.Event, param uint64) {
	if int(event) >= len(e.callbacks) {
		return
	}
	if cb := e.callbacks[event]; cb != nil {
		cb(param)
	}
}

// clients is the process-wide handle store. Its lifetime is the process
// lifetime; it is never implicitly cleared, so every issued handle must be
// freed explicitly (or leaked deliberately).
var clients = registry.NewStore[*entry]()

// log is swapped atomically so SetLogger is safe against concurrent
// boundary calls.
var log atomic.Pointer[logger.Logger]

func init() {
	log.Store(logger.Nop())
}

// SetLogger routes the package's log output. The default discards
// everything, which is the right behavior for an embedded library.
func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	log.Store(l)
}

// ClientNew constructs a client seeded with the current time in milliseconds
// and returns its handle. Returns InvalidHandle (0) when no slot can be
// allocated.
func ClientNew(now uint64) uint64 {
	e := &entry{}
	e.client = client.New(timetick.Millis(now), log.Load(), client.WithNotify(e.dispatch))

	handle, err := clients.Insert(e)
	if err != nil {
		log.Load().Error().Err(err).Msg("error creating client")
		return InvalidHandle
	}

	log.Load().Debug().Uint64("handle", uint64(handle)).Msg("client created")

	return uint64(handle)
}

// ClientUpdate advances the client identified by handle to the given
// absolute time in milliseconds.
func ClientUpdate(handle uint64, now uint64) int32 {
	return status(withClient(handle, func(c *client.Client) error {
		return c.Update(timetick.Millis(now))
	}))
}

// ClientFree destroys the client identified by handle. The first call
// succeeds and releases the client exactly once; any further call with the
// same handle reports StatusInvalidHandle.
func ClientFree(handle uint64) int32 {
	_, err := clients.Remove(registry.Handle(handle))
	if err != nil {
		return status(err)
	}

	// The removed entry goes out of scope here; dropping the last
	// reference is the single point of destruction.
	log.Load().Debug().Uint64("handle", handle).Msg("client freed")

	return StatusOK
}

// ClientReceive feeds one incoming datagram to the client.
func ClientReceive(handle uint64, now uint64, dgram []byte) int32 {
	return status(withClient(handle, func(c *client.Client) error {
		return c.Receive(timetick.Millis(now), dgram)
	}))
}

// ClientOutgoing returns the datagrams the client wants delivered to its
// host. A nil slice with StatusOK means nothing to send.
func ClientOutgoing(handle uint64, now uint64) ([][]byte, int32) {
	var datagrams [][]byte
	err := withClient(handle, func(c *client.Client) error {
		var innerErr error
		datagrams, innerErr = c.OutgoingDatagrams(timetick.Millis(now))
		return innerErr
	})
	if err != nil {
		return nil, status(err)
	}

	return datagrams, StatusOK
}

// ClientPushStep queues a predicted step for upload. Steps must carry
// consecutive tick ids.
func ClientPushStep(handle uint64, tickID uint32, step []byte) int32 {
	return status(withClient(handle, func(c *client.Client) error {
		return c.PushPredictedStep(tickID, step)
	}))
}

// ClientSetCallback registers fn in the given callback slot of the client.
// Slot indices follow client.Event. Passing a nil fn clears the slot.
func ClientSetCallback(handle uint64, slot uint32, fn CallbackFunc) int32 {
	if slot >= NumCallbackSlots {
		return StatusInternalError
	}

	err := clients.WithValue(registry.Handle(handle), func(e **entry) error {
		(*e).callbacks[slot] = fn
		return nil
	})

	return status(err)
}

// ClientClearCallback removes the callback in the given slot.
func ClientClearCallback(handle uint64, slot uint32) int32 {
	return ClientSetCallback(handle, slot, nil)
}

// withClient resolves handle and runs fn on the owned client while the
// registry guarantees exclusive access.
func withClient(handle uint64, fn func(c *client.Client) error) error {
	return clients.WithValue(registry.Handle(handle), func(e **entry) error {
		return fn((*e).client)
	})
}
