package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/platetrack/internal/entity"
)

type fakeTransport struct {
	sent   []Message
	failOn map[int]error // 1-based call index
	calls  int
}

func (f *fakeTransport) Send(_ context.Context, msg Message) error {
	f.calls++
	if err, ok := f.failOn[f.calls]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func threeBatches(t *testing.T) []entity.EmailBatch {
	t.Helper()
	items := []entity.OrderItem{
		itemOfSize(t, "a", 1500),
		itemOfSize(t, "b", 1500),
		itemOfSize(t, "c", 1500),
	}
	batches := Partition(items, 1500)
	require.Len(t, batches, 3)
	return batches
}

func TestSendAll_AllSucceed(t *testing.T) {
	ft := &fakeTransport{}
	res := NewSender(ft, nil).SendAll(context.Background(), threeBatches(t), "shop@example.com", "Orders")

	assert.Equal(t, 3, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Errors)

	require.Len(t, ft.sent, 3)
	assert.Equal(t, "Orders (1/3)", ft.sent[0].Subject)
	assert.Equal(t, "Orders (3/3)", ft.sent[2].Subject)
	assert.Equal(t, "shop@example.com", ft.sent[0].To)
}

// A failing batch is recorded and later batches are still attempted.
func TestSendAll_FailureDoesNotStopFanOut(t *testing.T) {
	ft := &fakeTransport{failOn: map[int]error{2: errors.New("smtp: connection reset")}}
	res := NewSender(ft, nil).SendAll(context.Background(), threeBatches(t), "shop@example.com", "Orders")

	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "batch 2/3")
	assert.Contains(t, res.Errors[0], "connection reset")

	// batches 1 and 3 delivered despite the middle failure
	require.Len(t, ft.sent, 2)
	assert.Equal(t, "Orders (1/3)", ft.sent[0].Subject)
	assert.Equal(t, "Orders (3/3)", ft.sent[1].Subject)
}

func TestSendAll_NoBatches(t *testing.T) {
	ft := &fakeTransport{}
	res := NewSender(ft, nil).SendAll(context.Background(), nil, "shop@example.com", "Orders")
	assert.Equal(t, SendResult{}, res)
	assert.Empty(t, ft.sent)
}
