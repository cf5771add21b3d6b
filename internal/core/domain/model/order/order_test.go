package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func mustFoodLine(t *testing.T, id string, qty int, price string) order.LineItem {
	t.Helper()
	line, err := order.NewFoodLine(id, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return line
}

func mustTotals(t *testing.T, subtotal, tax, shipping, discount, grand string) order.Totals {
	t.Helper()
	totals, err := order.NewTotals(
		decimal.RequireFromString(subtotal),
		decimal.RequireFromString(tax),
		decimal.RequireFromString(shipping),
		decimal.RequireFromString(discount),
		decimal.RequireFromString(grand),
		"",
	)
	require.NoError(t, err)
	return totals
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	lines := []order.LineItem{mustFoodLine(t, "food-1", 2, "100.00")}
	totals := mustTotals(t, "200.00", "10.00", "10.00", "0.00", "220.00")

	o, err := order.NewOrder(kernel.NewUUID(), lines, totals, testClock)
	require.NoError(t, err)
	return o
}

// advance drives an order forward through the given statuses.
func advance(t *testing.T, o *order.Order, statuses ...order.Status) {
	t.Helper()
	for i, s := range statuses {
		require.NoError(t, o.ChangeStatus(s, testClock.Add(time.Duration(i+1)*time.Minute)))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("starts placed with stamped timestamp and a system message", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.OrderPlaced, o.Status())
		assert.Equal(t, order.CancellationNone, o.Cancellation())
		assert.Equal(t, int64(1), o.Version())

		timestamps := o.StatusTimestamps()
		assert.Len(t, timestamps, 1)
		assert.Equal(t, testClock, timestamps[order.OrderPlaced])

		messages := o.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, order.ActorSystem, messages[0].Actor())
	})

	t.Run("requires at least one line", func(t *testing.T) {
		totals := mustTotals(t, "0.00", "0.00", "0.00", "0.00", "0.00")
		_, err := order.NewOrder(kernel.NewUUID(), nil, totals, testClock)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("allows at most one combo line", func(t *testing.T) {
		combo1, err := order.NewComboLine("combo-1", 1, decimal.RequireFromString("50.00"))
		require.NoError(t, err)
		combo2, err := order.NewComboLine("combo-2", 1, decimal.RequireFromString("60.00"))
		require.NoError(t, err)
		totals := mustTotals(t, "110.00", "0.00", "10.00", "0.00", "120.00")

		_, err = order.NewOrder(kernel.NewUUID(), []order.LineItem{combo1, combo2}, totals, testClock)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an invalid id", func(t *testing.T) {
		lines := []order.LineItem{mustFoodLine(t, "food-1", 1, "10.00")}
		totals := mustTotals(t, "10.00", "0.00", "10.00", "0.00", "20.00")

		_, err := order.NewOrder(kernel.UUID{}, lines, totals, testClock)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		assert.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value order is invalid", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("forward transition stamps a write-once timestamp and narrates", func(t *testing.T) {
		o := newTestOrder(t)
		before := len(o.Messages())

		later := testClock.Add(time.Hour)
		require.NoError(t, o.ChangeStatus(order.OrderConfirmed, later))

		assert.Equal(t, order.OrderConfirmed, o.Status())
		assert.Equal(t, later, o.StatusTimestamps()[order.OrderConfirmed])

		messages := o.Messages()
		require.Len(t, messages, before+1)
		last := messages[len(messages)-1]
		assert.Equal(t, order.ActorSystem, last.Actor())
		assert.Contains(t, last.Text(), "ORDER_CONFIRMED")
	})

	t.Run("timestamps keys track visited statuses exactly once", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderConfirmed, order.OrderPacked, order.Shipped)

		timestamps := o.StatusTimestamps()
		assert.Len(t, timestamps, 4)
		for _, s := range []order.Status{
			order.OrderPlaced, order.OrderConfirmed, order.OrderPacked, order.Shipped,
		} {
			assert.Contains(t, timestamps, s)
		}
	})

	t.Run("backward transition fails with a state conflict", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderConfirmed, order.OrderPacked)

		err := o.ChangeStatus(order.OrderConfirmed, testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, order.OrderPacked, o.Status())
	})

	t.Run("repeated transition to the current status fails as already in status", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderConfirmed)

		err := o.ChangeStatus(order.OrderConfirmed, testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAlreadyInStatus)
	})

	t.Run("delivered without proof of delivery fails", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		err := o.ChangeStatus(order.Delivered, testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrMissingProofOfDelivery)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("direct cancel resolves a pending request as approved", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation(testClock.Add(time.Minute)))

		require.NoError(t, o.ChangeStatus(order.Cancelled, testClock.Add(2*time.Minute)))
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.CancellationApproved, o.Cancellation())
	})
}

func TestOrder_CancellationNegotiation(t *testing.T) {
	t.Run("request records the prior status", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderPacked)

		require.NoError(t, o.RequestCancellation(testClock.Add(time.Hour)))

		assert.Equal(t, order.CancelRequested, o.Status())
		assert.Equal(t, order.CancellationRequested, o.Cancellation())
		assert.Equal(t, order.OrderPacked, o.StatusBeforeCancel())
	})

	t.Run("reject restores the exact prior status without re-stamping", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderPacked)
		packedAt := o.StatusTimestamps()[order.OrderPacked]

		require.NoError(t, o.RequestCancellation(testClock.Add(time.Hour)))
		require.NoError(t, o.RejectCancellation(testClock.Add(2*time.Hour)))

		assert.Equal(t, order.OrderPacked, o.Status())
		assert.Equal(t, order.CancellationRejected, o.Cancellation())
		assert.Equal(t, packedAt, o.StatusTimestamps()[order.OrderPacked])
	})

	t.Run("order continues forward after a rejected cancellation", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderPacked)
		require.NoError(t, o.RequestCancellation(testClock.Add(time.Hour)))
		require.NoError(t, o.RejectCancellation(testClock.Add(2*time.Hour)))

		require.NoError(t, o.ChangeStatus(order.Shipped, testClock.Add(3*time.Hour)))
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("approve yields terminal cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation(testClock.Add(time.Hour)))
		require.NoError(t, o.ApproveCancellation(testClock.Add(2*time.Hour)))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.CancellationApproved, o.Cancellation())

		err := o.ApproveCancellation(testClock.Add(3 * time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNoActiveCancellationRequest)
	})

	t.Run("decision without a pending request fails", func(t *testing.T) {
		o := newTestOrder(t)

		assert.ErrorIs(t, o.ApproveCancellation(testClock), order.ErrNoActiveCancellationRequest)
		assert.ErrorIs(t, o.RejectCancellation(testClock), order.ErrNoActiveCancellationRequest)
	})

	t.Run("only one request per order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation(testClock.Add(time.Hour)))
		require.NoError(t, o.RejectCancellation(testClock.Add(2*time.Hour)))

		err := o.RequestCancellation(testClock.Add(3 * time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCancellationAlreadyRequested)
	})

	t.Run("no request on a delivered order", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)
		require.NoError(t, o.RecordProofOfDelivery("Jamie", "sig-1", "", testClock.Add(time.Hour)))

		err := o.RequestCancellation(testClock.Add(2 * time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("assigns and narrates", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AssignCourier("Speedy Jo", "TRK-1001", "", testClock.Add(time.Minute)))

		courier := o.Courier()
		require.NotNil(t, courier)
		assert.Equal(t, "Speedy Jo", courier.CourierName())
		assert.Equal(t, "TRK-1001", courier.TrackingID())

		messages := o.Messages()
		last := messages[len(messages)-1]
		assert.Equal(t, order.ActorAdmin, last.Actor())
		assert.Contains(t, last.Text(), "Speedy Jo")
	})

	t.Run("re-assignment overwrites and narrates again", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignCourier("Speedy Jo", "TRK-1001", "", testClock))
		require.NoError(t, o.AssignCourier("Swift Sam", "TRK-2002", "", testClock.Add(time.Minute)))

		courier := o.Courier()
		require.NotNil(t, courier)
		assert.Equal(t, "Swift Sam", courier.CourierName())

		last := o.Messages()[len(o.Messages())-1]
		assert.Contains(t, last.Text(), "re-assigned")
	})

	t.Run("assignment does not change the status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignCourier("Speedy Jo", "TRK-1001", "", testClock))
		assert.Equal(t, order.OrderPlaced, o.Status())
	})

	t.Run("rejected on a terminal order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation(testClock))
		require.NoError(t, o.ApproveCancellation(testClock.Add(time.Minute)))

		err := o.AssignCourier("Speedy Jo", "TRK-1001", "", testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	})

	t.Run("requires name and tracking id", func(t *testing.T) {
		o := newTestOrder(t)
		assert.ErrorIs(t, o.AssignCourier("", "TRK-1", "", testClock), errs.ErrValueIsRequired)
		assert.ErrorIs(t, o.AssignCourier("Jo", "", "", testClock), errs.ErrValueIsRequired)
	})
}

func TestOrder_RecordHubArrival(t *testing.T) {
	t.Run("appends a hub-scoped message without moving the status", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderAtHub)

		require.NoError(t, o.RecordHubArrival("Central Hub", "Riley", "shelf 4", testClock.Add(time.Hour)))

		assert.Equal(t, order.OrderAtHub, o.Status())
		last := o.Messages()[len(o.Messages())-1]
		assert.Equal(t, order.ActorHub, last.Actor())
		assert.Contains(t, last.Text(), "Central Hub")
		assert.Contains(t, last.Text(), "shelf 4")
	})

	t.Run("requires hub and staff names", func(t *testing.T) {
		o := newTestOrder(t)
		assert.ErrorIs(t, o.RecordHubArrival("", "Riley", "", testClock), errs.ErrValueIsRequired)
		assert.ErrorIs(t, o.RecordHubArrival("Central Hub", "", "", testClock), errs.ErrValueIsRequired)
	})
}

func TestOrder_RecordAttempt(t *testing.T) {
	t.Run("records the attempt and keeps the status", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		err := o.RecordAttempt(order.AttemptReasonCustomerNotAvailable, "rang twice", "", testClock.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, order.OutForDelivery, o.Status())
		attempts := o.Attempts()
		require.Len(t, attempts, 1)
		assert.Equal(t, order.AttemptReasonCustomerNotAvailable, attempts[0].Reason())

		last := o.Messages()[len(o.Messages())-1]
		assert.Equal(t, order.ActorDeliveryPartner, last.Actor())
		assert.Contains(t, last.Text(), "CUSTOMER_NOT_AVAILABLE")
	})

	t.Run("rejected outside out for delivery", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderPacked)

		err := o.RecordAttempt(order.AttemptReasonAddressNotFound, "", "", testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNotOutForDelivery)
		assert.Empty(t, o.Attempts())
	})

	t.Run("rejects unknown reason codes", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		err := o.RecordAttempt(order.AttemptReason("DOG_ATE_IT"), "", "", testClock)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_RecordProofOfDelivery(t *testing.T) {
	t.Run("captures pod and reaches delivered", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		deliveredAt := testClock.Add(time.Hour)
		require.NoError(t, o.RecordProofOfDelivery("Jamie", "sig-blob-1", "photo-1", deliveredAt))

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, o.StatusTimestamps()[order.Delivered])

		pod := o.ProofOfDelivery()
		require.NotNil(t, pod)
		assert.Equal(t, "Jamie", pod.RecipientName())
		assert.Equal(t, "sig-blob-1", pod.SignatureRef())
	})

	t.Run("succeeds without any prior attempt or assignment", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		require.NoError(t, o.RecordProofOfDelivery("Jamie", "sig-blob-1", "", testClock.Add(time.Hour)))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("empty signature fails", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		err := o.RecordProofOfDelivery("Jamie", "", "", testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrSignatureRequired)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Nil(t, o.ProofOfDelivery())
	})

	t.Run("empty recipient fails", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		err := o.RecordProofOfDelivery("", "sig-1", "", testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejected outside out for delivery", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Shipped)

		err := o.RecordProofOfDelivery("Jamie", "sig-1", "", testClock.Add(time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNotOutForDelivery)
	})
}

func TestOrder_Messages(t *testing.T) {
	t.Run("log length is monotonically non-decreasing", func(t *testing.T) {
		o := newTestOrder(t)
		lengths := []int{len(o.Messages())}

		require.NoError(t, o.AddMessage("We are preparing your order", order.ActorAdmin, testClock.Add(time.Minute)))
		lengths = append(lengths, len(o.Messages()))

		advance(t, o, order.OrderConfirmed, order.OrderPacked)
		lengths = append(lengths, len(o.Messages()))

		for i := 1; i < len(lengths); i++ {
			assert.Greater(t, lengths[i], lengths[i-1])
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddMessage("first", order.ActorAdmin, testClock))

		messages := o.Messages()
		messages[0] = order.DeliveryMessage{}

		assert.Equal(t, "Order placed", o.Messages()[0].Text())
	})

	t.Run("rejects empty text and unknown actors", func(t *testing.T) {
		o := newTestOrder(t)
		assert.ErrorIs(t, o.AddMessage("", order.ActorAdmin, testClock), errs.ErrValueIsRequired)
		assert.ErrorIs(t, o.AddMessage("hi", order.Actor("stranger"), testClock), errs.ErrValueIsInvalid)
	})
}

func TestOrder_PushLocation(t *testing.T) {
	t.Run("silently dropped outside out for delivery", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderPacked)

		accepted, err := o.PushLocation(41.01, 28.97, testClock.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Nil(t, o.LatestLocation())
	})

	t.Run("accepted points are retained in arrival order", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		for i := 0; i < 3; i++ {
			accepted, err := o.PushLocation(41.0+float64(i), 28.9, testClock.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
			assert.True(t, accepted)
		}

		track := o.Track()
		require.Len(t, track, 3)
		assert.InDelta(t, 41.0, track[0].Latitude(), 1e-9)
		assert.InDelta(t, 43.0, track[2].Latitude(), 1e-9)

		latest := o.LatestLocation()
		require.NotNil(t, latest)
		assert.InDelta(t, 43.0, latest.Latitude(), 1e-9)
	})

	t.Run("out of range coordinates are rejected", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OutForDelivery)

		_, err := o.PushLocation(91.0, 0, testClock)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = o.PushLocation(0, -181.0, testClock)
		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips through restore params", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.OrderConfirmed, order.OutForDelivery)
		require.NoError(t, o.AssignCourier("Speedy Jo", "TRK-1", "https://track.example/%s", testClock))
		_, err := o.PushLocation(41.01, 28.97, testClock.Add(time.Minute))
		require.NoError(t, err)

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                 o.ID(),
			Lines:              o.Lines(),
			Totals:             o.Totals(),
			Status:             o.Status(),
			StatusTimestamps:   o.StatusTimestamps(),
			StatusBeforeCancel: o.StatusBeforeCancel(),
			Cancellation:       o.Cancellation(),
			Courier:            o.Courier(),
			ProofOfDelivery:    o.ProofOfDelivery(),
			Messages:           o.Messages(),
			Attempts:           o.Attempts(),
			Track:              o.Track(),
			PlacedAt:           o.PlacedAt(),
			Version:            o.Version(),
		})
		require.NoError(t, err)

		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, o.StatusTimestamps(), restored.StatusTimestamps())
		assert.Equal(t, o.Messages(), restored.Messages())
		assert.Equal(t, o.Courier(), restored.Courier())
		require.NotNil(t, restored.LatestLocation())
	})

	t.Run("rejects an invalid version", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:           o.ID(),
			Lines:        o.Lines(),
			Totals:       o.Totals(),
			Status:       o.Status(),
			Cancellation: o.Cancellation(),
			Version:      0,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}
