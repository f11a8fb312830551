// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command clientbridge-ffi builds the bridge package as a C shared library:
//
//	go build -buildmode=c-shared -o libclientbridge.so ./cmd/clientbridge-ffi
//
// Every export takes and returns fixed-width integers only; datagram and
// step payloads cross as pointer+length pairs and are copied before use, so
// the caller may reuse its buffer immediately after the call returns.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/MKhiriev/go-client-bridge/bridge"
)

//export client_new
func client_new(now C.uint64_t) C.uint64_t {
	return C.uint64_t(bridge.ClientNew(uint64(now)))
}

//export client_update
func client_update(handle C.uint64_t, now C.uint64_t) C.int32_t {
	return C.int32_t(bridge.ClientUpdate(uint64(handle), uint64(now)))
}

//export client_receive
func client_receive(handle C.uint64_t, now C.uint64_t, data *C.uint8_t, size C.size_t) C.int32_t {
	dgram := C.GoBytes(unsafe.Pointer(data), C.int(size))
	return C.int32_t(bridge.ClientReceive(uint64(handle), uint64(now), dgram))
}

//export client_push_step
func client_push_step(handle C.uint64_t, tickID C.uint32_t, data *C.uint8_t, size C.size_t) C.int32_t {
	step := C.GoBytes(unsafe.Pointer(data), C.int(size))
	return C.int32_t(bridge.ClientPushStep(uint64(handle), uint32(tickID), step))
}

//export client_free
func client_free(handle C.uint64_t) C.int32_t {
	return C.int32_t(bridge.ClientFree(uint64(handle)))
}

func main() {}
