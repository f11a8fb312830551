// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the time-driven session client managed by the
// bridge facade.
//
// A Client connects to a host, downloads the authoritative state, then keeps
// the session in sync: it uploads locally predicted steps and applies the
// authoritative steps the host confirms. The client performs no I/O of its
// own; the embedding host feeds it incoming datagrams via Receive and flushes
// OutgoingDatagrams onto whatever transport it owns. All timing is derived
// from the caller-supplied millisecond clock passed to New, Update, and
// OutgoingDatagrams.
package client
