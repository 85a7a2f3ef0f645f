package bench

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
	"github.com/ykhdr/crack-hash/common/amqp/publisher"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Sink receives every row as soon as its case finishes.
type Sink interface {
	Write(ctx context.Context, row Row) error
}

// CSVSink rewrites the whole file after every row, so a killed run still
// leaves a complete table of the cases finished so far.
type CSVSink struct {
	path string
	rows []Row
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Write(_ context.Context, row Row) error {
	s.rows = append(s.rows, row)
	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrapf(err, "create %s", s.path)
	}
	w := csv.NewWriter(f)
	records := make([][]string, 0, len(s.rows)+1)
	records = append(records, Columns)
	for _, r := range s.rows {
		records = append(records, r.Record())
	}
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", s.path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", s.path)
	}
	return nil
}

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type MongoSink struct {
	coll inserter
}

func NewMongoSink(coll *mongo.Collection) *MongoSink {
	return &MongoSink{coll: coll}
}

func (s *MongoSink) Write(ctx context.Context, row Row) error {
	if _, err := s.coll.InsertOne(ctx, row); err != nil {
		return errors.Wrap(err, "insert bench row")
	}
	return nil
}

type AmqpSink struct {
	pub publisher.Publisher[Row]
}

func NewAmqpSink(pub publisher.Publisher[Row]) *AmqpSink {
	return &AmqpSink{pub: pub}
}

func (s *AmqpSink) Write(ctx context.Context, row Row) error {
	if err := s.pub.SendMessage(ctx, &row, publisher.Persistent); err != nil {
		return errors.Wrap(err, "publish bench row")
	}
	return nil
}
