// Package telemetry implements the gRPC transport of the pump server.
//
// It decodes events from the wire, hands them to a business-service
// interface and renders the retained history back to clients.
package telemetry
