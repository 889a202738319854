package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookstore-backend/internal/identity"
)

type stubGateway struct {
	sess SessionStatus
	err  error
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, req Request) (Response, error) {
	return Response{}, errors.New("not implemented")
}

func (g *stubGateway) GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	return g.sess, g.err
}

type stubMarker struct {
	calls  []int
	exists bool
	err    error
}

func (m *stubMarker) MarkPaid(orderID int) (bool, error) {
	m.calls = append(m.calls, orderID)
	return m.exists, m.err
}

func paidSession(orderID string) SessionStatus {
	return SessionStatus{
		Status:        "complete",
		PaymentStatus: "paid",
		Metadata:      map[string]string{"orderId": orderID},
	}
}

func TestCompleteOrder(t *testing.T) {
	gw := &stubGateway{sess: paidSession("12")}
	marker := &stubMarker{exists: true}
	comp := NewCompletion(gw, marker)

	res, err := comp.CompleteOrder(context.Background(), "cs_test_1", identity.Identity{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 12, res.OrderID)
	assert.Equal(t, []int{12}, marker.calls)

	// a replay of the same session lands on an already-paid order and
	// stays a success
	res, err = comp.CompleteOrder(context.Background(), "cs_test_1", identity.Identity{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 12, res.OrderID)
	assert.Equal(t, []int{12, 12}, marker.calls)
}

func TestCompleteOrder_NotPaid(t *testing.T) {
	for _, tc := range []struct {
		name string
		sess SessionStatus
	}{
		{"open session", SessionStatus{Status: "open", PaymentStatus: "unpaid"}},
		{"complete but unpaid", SessionStatus{Status: "complete", PaymentStatus: "unpaid"}},
		{"expired", SessionStatus{Status: "expired", PaymentStatus: "paid"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			marker := &stubMarker{exists: true}
			comp := NewCompletion(&stubGateway{sess: tc.sess}, marker)

			_, err := comp.CompleteOrder(context.Background(), "cs_test_2", identity.Identity{UserID: 7})
			require.ErrorIs(t, err, ErrNotComplete)
			assert.Empty(t, marker.calls, "an unpaid session must not touch the order")
		})
	}
}

func TestCompleteOrder_BadMetadata(t *testing.T) {
	comp := NewCompletion(&stubGateway{sess: SessionStatus{Status: "complete", PaymentStatus: "paid"}}, &stubMarker{exists: true})
	_, err := comp.CompleteOrder(context.Background(), "cs_test_3", identity.Identity{UserID: 7})
	require.ErrorIs(t, err, ErrIntegrity)

	comp = NewCompletion(&stubGateway{sess: paidSession("not-a-number")}, &stubMarker{exists: true})
	_, err = comp.CompleteOrder(context.Background(), "cs_test_4", identity.Identity{UserID: 7})
	require.ErrorIs(t, err, ErrIntegrity)
}

func TestCompleteOrder_UnknownOrder(t *testing.T) {
	marker := &stubMarker{exists: false}
	comp := NewCompletion(&stubGateway{sess: paidSession("404")}, marker)

	_, err := comp.CompleteOrder(context.Background(), "cs_test_5", identity.Identity{UserID: 7})
	require.ErrorIs(t, err, ErrIntegrity)
	assert.Equal(t, []int{404}, marker.calls)
}

func TestCompleteOrder_GatewayError(t *testing.T) {
	comp := NewCompletion(&stubGateway{err: errors.New("connection refused")}, &stubMarker{})
	_, err := comp.CompleteOrder(context.Background(), "cs_test_6", identity.Identity{UserID: 7})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotComplete)
	assert.NotErrorIs(t, err, ErrIntegrity)
}
