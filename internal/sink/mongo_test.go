package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

var errTestDuplicate = errors.New("duplicate key")

// fakeCollection keeps inserted documents in memory.
type fakeCollection struct {
	// docs are the inserted documents.
	docs []interface{}
	// err is returned from InsertOne when set.
	err error
	// deadlines records whether each call carried a deadline.
	deadlines []bool
}

// InsertOne records the document.
func (f *fakeCollection) InsertOne(
	ctx context.Context,
	document interface{},
	_ ...*options.InsertOneOptions,
) (*mongo.InsertOneResult, error) {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)

	if f.err != nil {
		return nil, f.err
	}

	f.docs = append(f.docs, document)

	return &mongo.InsertOneResult{InsertedID: len(f.docs)}, nil
}

// TestMongo_Log verifies the stored document shape.
func TestMongo_Log(t *testing.T) {
	t.Parallel()

	coll := new(fakeCollection)
	stamp := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	sink := NewMongo(coll, "pi", 0)
	sink.now = func() time.Time { return stamp }

	require.NoError(t, sink.Log(context.Background(), event.New(1)))
	require.NoError(t, sink.Log(context.Background(), event.New()))

	require.Equal(t, []interface{}{
		eventDocument{SourceID: "pi", Fields: []float64{1}, LoggedAt: stamp},
		eventDocument{SourceID: "pi", Fields: []float64{}, LoggedAt: stamp},
	}, coll.docs)
	require.Equal(t, []bool{false, false}, coll.deadlines)
}

// TestMongo_LogDeadline verifies every insert is bounded by the timeout.
func TestMongo_LogDeadline(t *testing.T) {
	t.Parallel()

	coll := new(fakeCollection)

	require.NoError(t, NewMongo(coll, "pi", time.Second).Log(context.Background(), event.New(1)))
	require.Equal(t, []bool{true}, coll.deadlines)
}

// TestMongo_LogError verifies insert failures are wrapped.
func TestMongo_LogError(t *testing.T) {
	t.Parallel()

	err := NewMongo(&fakeCollection{err: errTestDuplicate}, "pi", time.Second).Log(context.Background(), event.New(0))
	require.ErrorIs(t, err, errTestDuplicate)
}
