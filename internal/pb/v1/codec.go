package telemetryv1

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

var (
	// ErrNotNumber is returned when an event field on the wire is not a number.
	ErrNotNumber = errors.New("event field is not a number")
	// ErrNotList is returned when a history entry on the wire is not a list.
	ErrNotList = errors.New("history entry is not a list")
	// ErrNotFinite is returned for NaN and infinite fields, which protojson cannot encode.
	ErrNotFinite = errors.New("event field is not finite")
)

// EventToProto converts an event to a list of numbers.
func EventToProto(e event.Event) *structpb.ListValue {
	values := e.Values()
	list := &structpb.ListValue{
		Values: make([]*structpb.Value, 0, len(values)),
	}

	for _, v := range values {
		list.Values = append(list.Values, structpb.NewNumberValue(v))
	}

	return list
}

// EventFromProto converts a list of numbers back to an event.
func EventFromProto(list *structpb.ListValue) (event.Event, error) {
	values := make([]float64, 0, len(list.GetValues()))

	for i, v := range list.GetValues() {
		number, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return event.Event{}, fmt.Errorf("field %d: %w", i, ErrNotNumber)
		}

		if math.IsNaN(number.NumberValue) || math.IsInf(number.NumberValue, 0) {
			return event.Event{}, fmt.Errorf("field %d: %w", i, ErrNotFinite)
		}

		values = append(values, number.NumberValue)
	}

	return event.New(values...), nil
}

// HistoryToProto converts events to a list of lists, oldest first.
func HistoryToProto(events []event.Event) *structpb.ListValue {
	list := &structpb.ListValue{
		Values: make([]*structpb.Value, 0, len(events)),
	}

	for _, e := range events {
		list.Values = append(list.Values, structpb.NewListValue(EventToProto(e)))
	}

	return list
}

// HistoryFromProto converts a list of lists back to events.
func HistoryFromProto(list *structpb.ListValue) ([]event.Event, error) {
	events := make([]event.Event, 0, len(list.GetValues()))

	for i, v := range list.GetValues() {
		entry := v.GetListValue()
		if entry == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNotList)
		}

		e, err := EventFromProto(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		events = append(events, e)
	}

	return events, nil
}
