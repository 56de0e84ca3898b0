package sink

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// Collection is the part of *mongo.Collection the sink uses.
type Collection interface {
	InsertOne(
		ctx context.Context,
		document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// eventDocument is the stored form of one event.
type eventDocument struct {
	SourceID string    `bson:"source_id"`
	Fields   []float64 `bson:"fields"`
	LoggedAt time.Time `bson:"logged_at"`
}

// Mongo stores one document per event.
type Mongo struct {
	coll     Collection
	sourceID string
	// timeout bounds one insert.
	timeout time.Duration
	// now stamps the documents.
	now func() time.Time
}

// NewMongo creates a sink writing to coll. A timeout <= 0 means no deadline.
func NewMongo(coll Collection, sourceID string, timeout time.Duration) *Mongo {
	return &Mongo{
		coll:     coll,
		sourceID: sourceID,
		timeout:  timeout,
		now:      time.Now,
	}
}

// ConnectMongo connects to uri and checks the server answers.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // Ping error is the one worth reporting.

		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

// Log inserts the event.
func (m *Mongo) Log(ctx context.Context, e event.Event) error {
	doc := eventDocument{
		SourceID: m.sourceID,
		Fields:   e.Values(),
		LoggedAt: m.now().UTC(),
	}

	if doc.Fields == nil {
		doc.Fields = []float64{}
	}

	ctx, cancel := callContext(ctx, m.timeout)
	defer cancel()

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}
