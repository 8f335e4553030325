// Package kafka publishes station price series to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/blackdede/carbura/internal/domain"
)

// Writer produces one message per station series to a Kafka topic.
// It implements pipeline.Emitter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Emit serializes every station series of the heatmap and publishes them in
// a single WriteMessages call for efficiency.
func (w *Writer) Emit(ctx context.Context, heatmap domain.Heatmap) error {
	if len(heatmap.Stations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(heatmap.Stations))
	for i := range heatmap.Stations {
		msg, err := serializeToMessage(heatmap.Stations[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("station series published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StationSeries into a Kafka message keyed by
// station id.
func serializeToMessage(series domain.StationSeries) (kafkago.Message, error) {
	data, err := json.Marshal(series)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize station series: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(series.ID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "postal_code", Value: []byte(series.PostalCode)},
			{Key: "city", Value: []byte(series.City)},
		},
	}, nil
}
