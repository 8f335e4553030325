//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/blackdede/carbura/internal/adapter/kafka"
	"github.com/blackdede/carbura/internal/domain"
)

const testSinkTopic = "fuel-price-series-test"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("carbura-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestKafkaSink publishes a heatmap through the writer and verifies the
// station series round-trip, keys, and headers on the sink topic.
func TestKafkaSink(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	name := "Intermarché"
	heatmap := domain.Heatmap{Stations: []domain.StationSeries{
		{
			ID:         1000001,
			Name:       &name,
			Address:    "596 AVENUE DE LATTRE DE TASSIGNY",
			Latitude:   46.201,
			Longitude:  5.198,
			PostalCode: "01000",
			City:       "Bourg-en-Bresse",
			Fuels:      map[string][]float64{"Gazole": {0, 1.859, 1.859}},
		},
		{
			ID:         2000002,
			Address:    "2 rue du Port",
			PostalCode: "69002",
			City:       "Lyon",
			Fuels:      map[string][]float64{"SP95": {1.999, 1.999, 2.049}},
		},
	}}

	writer := kafkaadapter.NewWriter([]string{broker}, testSinkTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.Emit(ctx, heatmap))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.StationSeries, len(heatmap.Stations))
	headers := make(map[string]map[string]string, len(heatmap.Stations))
	for len(received) < len(heatmap.Stations) {
		readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		cancelRead()
		require.NoError(t, err, "read from sink topic")

		var series domain.StationSeries
		require.NoError(t, json.Unmarshal(msg.Value, &series))
		received[string(msg.Key)] = series

		hs := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			hs[h.Key] = string(h.Value)
		}
		headers[string(msg.Key)] = hs
	}

	first, ok := received["1000001"]
	require.True(t, ok, "expected message keyed by station id 1000001")
	require.NotNil(t, first.Name)
	assert.Equal(t, "Intermarché", *first.Name)
	assert.Equal(t, []float64{0, 1.859, 1.859}, first.Fuels["Gazole"])
	assert.Equal(t, "01000", headers["1000001"]["postal_code"])
	assert.Equal(t, "Bourg-en-Bresse", headers["1000001"]["city"])

	second, ok := received["2000002"]
	require.True(t, ok, "expected message keyed by station id 2000002")
	assert.Nil(t, second.Name)
	assert.Equal(t, []float64{1.999, 1.999, 2.049}, second.Fuels["SP95"])
	assert.Equal(t, "Lyon", headers["2000002"]["city"])
}
