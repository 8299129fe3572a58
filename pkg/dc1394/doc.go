// Package dc1394 implements iidc.Backend on top of libdc1394 v2, the open
// userspace driver for IIDC cameras on the Linux FireWire stack.
//
// The binding requires the libdc1394 headers and library at build time and
// is therefore gated behind the dc1394 build tag:
//
//	go build -tags dc1394 ./...
//
// Without the tag the package compiles to just this documentation, so the
// rest of the module (and its tests, which use pkg/sim) build everywhere.
package dc1394
