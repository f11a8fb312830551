// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/simhost"
)

func TestClientLifecycle(t *testing.T) {
	h := ClientNew(100)
	require.NotEqual(t, InvalidHandle, h)

	assert.Equal(t, StatusOK, ClientUpdate(h, 150))
	assert.Equal(t, StatusOK, ClientFree(h))

	// The freed handle is dead forever.
	assert.Equal(t, StatusInvalidHandle, ClientUpdate(h, 200))
	assert.Equal(t, StatusInvalidHandle, ClientFree(h))
}

func TestClientNew_HandlesAreUnique(t *testing.T) {
	h1 := ClientNew(0)
	h2 := ClientNew(0)
	defer ClientFree(h2)

	require.NotEqual(t, InvalidHandle, h1)
	require.NotEqual(t, InvalidHandle, h2)
	assert.NotEqual(t, h1, h2)

	require.Equal(t, StatusOK, ClientFree(h1))

	// A fresh client may reuse h1's slot but never its handle value.
	h3 := ClientNew(0)
	defer ClientFree(h3)
	assert.NotEqual(t, h1, h3)
}

func TestClientUpdate_NeverIssuedHandle(t *testing.T) {
	assert.Equal(t, StatusInvalidHandle, ClientUpdate(0, 100))
	assert.Equal(t, StatusInvalidHandle, ClientUpdate(0xDEADBEEF, 100))
	assert.Equal(t, StatusInvalidHandle, ClientFree(0xDEADBEEF))
}

func TestClientUpdate_BackwardsTimeIsInternalError(t *testing.T) {
	h := ClientNew(1000)
	defer ClientFree(h)

	require.Equal(t, StatusOK, ClientUpdate(h, 2000))
	assert.Equal(t, StatusInternalError, ClientUpdate(h, 500))
}

func TestClient_SyncSessionThroughBoundary(t *testing.T) {
	host := simhost.New([]byte("authoritative state"), 0, logger.Nop())

	h := ClientNew(0)
	require.NotEqual(t, InvalidHandle, h)
	defer ClientFree(h)

	var connected, stateReceived bool
	var stateOctets uint64
	require.Equal(t, StatusOK, ClientSetCallback(h, CallbackConnected, func(uint64) { connected = true }))
	require.Equal(t, StatusOK, ClientSetCallback(h, CallbackStateReceived, func(param uint64) {
		stateReceived = true
		stateOctets = param
	}))

	// Pump the datagram exchange by hand, as an embedding host would.
	for now := uint64(0); now < 100 && !stateReceived; now += 16 {
		datagrams, st := ClientOutgoing(h, now)
		require.Equal(t, StatusOK, st)
		for _, dgram := range datagrams {
			responses, err := host.HandleDatagram(dgram)
			require.NoError(t, err)
			for _, response := range responses {
				require.Equal(t, StatusOK, ClientReceive(h, now, response))
			}
		}
		require.Equal(t, StatusOK, ClientUpdate(h, now))
	}

	assert.True(t, connected)
	assert.True(t, stateReceived)
	assert.Equal(t, uint64(len("authoritative state")), stateOctets)

	// In-game: predicted steps flow out, authoritative confirmations flow
	// back.
	require.Equal(t, StatusOK, ClientPushStep(h, 0, []byte{0x11}))

	datagrams, st := ClientOutgoing(h, 200)
	require.Equal(t, StatusOK, st)
	for _, dgram := range datagrams {
		responses, err := host.HandleDatagram(dgram)
		require.NoError(t, err)
		for _, response := range responses {
			require.Equal(t, StatusOK, ClientReceive(h, 200, response))
		}
	}
	assert.Equal(t, 1, host.AuthoritativeCount())
}

func TestClientSetCallback_InvalidSlot(t *testing.T) {
	h := ClientNew(0)
	defer ClientFree(h)

	assert.Equal(t, StatusInternalError, ClientSetCallback(h, NumCallbackSlots, func(uint64) {}))
}

func TestClientSetCallback_InvalidHandle(t *testing.T) {
	h := ClientNew(0)
	require.Equal(t, StatusOK, ClientFree(h))

	assert.Equal(t, StatusInvalidHandle, ClientSetCallback(h, 0, func(uint64) {}))
	assert.Equal(t, StatusInvalidHandle, ClientClearCallback(h, 0))
}

func TestClientClearCallback_StopsNotifications(t *testing.T) {
	host := simhost.New(nil, 0, logger.Nop())

	h := ClientNew(0)
	defer ClientFree(h)

	calls := 0
	require.Equal(t, StatusOK, ClientSetCallback(h, CallbackConnected, func(uint64) { calls++ }))
	require.Equal(t, StatusOK, ClientClearCallback(h, CallbackConnected))

	datagrams, st := ClientOutgoing(h, 0)
	require.Equal(t, StatusOK, st)
	for _, dgram := range datagrams {
		responses, err := host.HandleDatagram(dgram)
		require.NoError(t, err)
		for _, response := range responses {
			require.Equal(t, StatusOK, ClientReceive(h, 0, response))
		}
	}

	assert.Zero(t, calls)
}

func TestConcurrentClientsDoNotInterfere(t *testing.T) {
	const clientCount = 8
	const updates = 200

	handles := make([]uint64, clientCount)
	for i := range handles {
		handles[i] = ClientNew(0)
		require.NotEqual(t, InvalidHandle, handles[i])
	}

	var wg sync.WaitGroup
	for _, h := range handles {
		wg.Add(1)
		go func(h uint64) {
			defer wg.Done()
			for now := uint64(1); now <= updates; now++ {
				assert.Equal(t, StatusOK, ClientUpdate(h, now))
			}
		}(h)
	}
	wg.Wait()

	for _, h := range handles {
		assert.Equal(t, StatusOK, ClientFree(h))
	}
}

func TestConcurrentCreateAndFree(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h := ClientNew(uint64(i))
				if !assert.NotEqual(t, InvalidHandle, h) {
					return
				}
				assert.Equal(t, StatusOK, ClientUpdate(h, uint64(i)+1))
				assert.Equal(t, StatusOK, ClientFree(h))
				assert.Equal(t, StatusInvalidHandle, ClientFree(h))
			}
		}()
	}
	wg.Wait()
}
