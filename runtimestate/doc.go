// Package runtimestate holds the runtime store: which model runtime is
// attached, whether it is connected, the generation settings sent with each
// request, and the capability flags the runtime publishes.
//
// The runtime itself is opaque. The store only records its identity and the
// capabilities it reports through the Runtime interface; everything else
// about providers and transports lives outside this module.
package runtimestate
