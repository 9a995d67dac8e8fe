package kafka

import (
	"context"
	"log/slog"
	"sort"

	"github.com/couchcryptid/coastal-data-etl/internal/config"
	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces enriched survey points to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple points to the sink topic in a
// single WriteMessages call. Points are keyed by ID, so the hash balancer keeps
// every version of a point on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, points []domain.SurveyPoint) error {
	if len(points) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(points))
	for i := range points {
		msg, err := serializeToMessage(points[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage converts a SurveyPoint into a Kafka message with headers
// in stable key order.
func serializeToMessage(p domain.SurveyPoint) (kafkago.Message, error) {
	out, err := domain.SerializeSurveyPoint(p)
	if err != nil {
		return kafkago.Message{}, err
	}

	keys := make([]string, 0, len(out.Headers))
	for k := range out.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(out.Headers[k])})
	}
	return kafkago.Message{Key: out.Key, Value: out.Value, Headers: headers}, nil
}
