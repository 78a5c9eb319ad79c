package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	App       string    `bson:"app,omitempty"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// inserter is the slice of *mongo.Collection the sink needs.
type inserter interface {
	InsertMany(ctx context.Context, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

type mongoSink struct {
	col       inserter
	client    *mongo.Client
	app       string
	queue     chan LogDocument
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// MongoHandler ships records to MongoDB without blocking the caller.
// Records are queued on a buffered channel and written by one goroutine in
// batches; when the queue is full the record is dropped.
type MongoHandler struct {
	sink   *mongoSink
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// MongoOptions configures NewMongoHandler.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	App        string
	Level      slog.Leveler
}

// NewMongoHandler connects to MongoDB and starts the background writer.
// Call Close during shutdown to flush queued records.
func NewMongoHandler(ctx context.Context, opts MongoOptions) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(opts.URI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(opts.Database).Collection(opts.Collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	h := newMongoHandler(col, opts.App, opts.Level)
	h.sink.client = client
	return h, nil
}

func newMongoHandler(col inserter, app string, level slog.Leveler) *MongoHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	sink := &mongoSink{
		col:     col,
		app:     app,
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go sink.drain()
	return &MongoHandler{sink: sink, level: level}
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		App:   h.sink.app,
		Attrs: bson.M{},
	}

	add := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[h.prefix+a.Key] = a.Value.Resolve().Any()
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	select {
	case h.sink.queue <- doc:
	default:
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Close flushes queued records and disconnects. Safe to call more than once.
func (h *MongoHandler) Close(ctx context.Context) error {
	h.sink.closeOnce.Do(func() { close(h.sink.done) })
	<-h.sink.stopped
	if h.sink.client == nil {
		return nil
	}
	return h.sink.client.Disconnect(ctx)
}

func (s *mongoSink) drain() {
	defer close(s.stopped)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
				if len(batch) >= mongoBatchSize {
					flush()
				}
			}
			flush()
			return
		}
	}
}

// MultiHandler fans every record out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []string
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("logger: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
