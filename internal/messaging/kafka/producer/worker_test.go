package producer_test

import (
	"context"
	"errors"
	"testing"

	"out-of-office/internal/events"
	"out-of-office/internal/messaging/kafka"
	kafkaMock "out-of-office/internal/messaging/kafka/mock"
	"out-of-office/internal/messaging/kafka/producer"
	"out-of-office/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("success - publishes with headers and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}
		m := metrics.NewMetrics(prometheus.NewRegistry())

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{{
			ID:            "ev-1",
			RequestID:     "rid-1",
			AggregateType: "leave_request",
			AggregateID:   "lr-1",
			EventType:     events.LeaveApproved,
			Topic:         events.LeaveLifecycleTopic,
			Payload:       []byte(`{}`),
		}}, nil)
		repo.EXPECT().MarkSent(ctx, "ev-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, m, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		if assert.Len(t, writer.written, 1) {
			msg := writer.written[0]
			assert.Equal(t, "lr-1", string(msg.Key))
			assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
		}
		assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("success")))
	})

	t.Run("negative - failed publish is marked for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failTopic: "broken"}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "ev-1", Topic: "broken", Payload: []byte(`{}`)},
			{ID: "ev-2", Topic: events.LeaveLifecycleTopic, Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "ev-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "ev-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, nil, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("negative - list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, nil, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
