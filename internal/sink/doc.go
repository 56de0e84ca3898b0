// Package sink contains the event.Logger implementations that move events out
// of the process: the console, a ThingSpeak channel, CloudWatch metrics and a
// MongoDB collection. The pump server client in package common is the gRPC sink.
//
// Network sinks take their transport or API client as an interface, so tests
// and dry runs swap in recording fakes instead of flipping a test-mode flag.
package sink
