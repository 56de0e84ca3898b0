// Package telemetryv1 defines the sumpwatch.v1.TelemetryService gRPC contract
// and the conversions between events and their wire form.
//
// Messages are protobuf well-known types: an event travels as a
// google.protobuf.ListValue of numbers and a history as a ListValue of such
// lists, so the service needs no generated message code. The same encoding,
// rendered with protojson, is used for the pump server's state file.
package telemetryv1
