package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotOutForDelivery signals a delivery-execution operation (attempt or
	// proof of delivery) on an order that is not out for delivery.
	ErrNotOutForDelivery = errors.New("order is not out for delivery")
)

// Order is the aggregate root coordinating a retail order from placement
// through delivery. It owns the frozen line items and totals, the status state
// machine with write-once timestamps, the cancellation negotiation, the courier
// assignment, the proof-of-delivery record, the failed-attempt log, the
// append-only delivery messaging log, and the location series.
//
// Invariants:
//   - line item prices and the grand total are frozen at creation time
//   - statusTimestamps holds the first-reached time per status, write-once
//   - status moves only forward, except the cancellation-reject rollback
//   - Delivered requires a proof-of-delivery record
//   - messages are append-only and never reordered
type Order struct {
	id                 kernel.UUID
	lines              []LineItem
	totals             Totals
	status             Status
	statusTimestamps   map[Status]time.Time
	statusBeforeCancel Status
	cancellation       CancellationState
	courier            *CourierAssignment
	pod                *ProofOfDelivery
	messages           []DeliveryMessage
	attempts           []AttemptRecord
	track              []LocationPoint
	placedAt           time.Time
	version            int64

	isConstructed bool
}

// NewOrder creates an order at checkout with its prices already frozen into
// lines and totals. The order starts in OrderPlaced with a stamped timestamp
// and an initial system message.
func NewOrder(id kernel.UUID, lines []LineItem, totals Totals, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	comboLines := 0
	for _, line := range lines {
		if line.Kind() == LineKindCombo {
			comboLines++
		}
	}
	if comboLines > 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"lines", fmt.Errorf("at most one combo line is allowed, got %d", comboLines))
	}

	o := &Order{
		id:                 id,
		lines:              append([]LineItem(nil), lines...),
		totals:             totals,
		status:             OrderPlaced,
		statusTimestamps:   map[Status]time.Time{OrderPlaced: now},
		statusBeforeCancel: Unknown,
		cancellation:       CancellationNone,
		placedAt:           now,
		version:            1,
		isConstructed:      true,
	}
	o.appendSystemMessage("Order placed", now)

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to rehydrate an order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	Lines              []LineItem
	Totals             Totals
	Status             Status
	StatusTimestamps   map[Status]time.Time
	StatusBeforeCancel Status
	Cancellation       CancellationState
	Courier            *CourierAssignment
	ProofOfDelivery    *ProofOfDelivery
	Messages           []DeliveryMessage
	Attempts           []AttemptRecord
	Track              []LocationPoint
	PlacedAt           time.Time
	Version            int64
}

// RestoreOrder rebuilds an order aggregate from persistence, re-validating the
// parts that guard business invariants.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if err := params.Cancellation.Validate(); err != nil {
		return nil, err
	}
	if len(params.Lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not a valid aggregate version", params.Version))
	}

	timestamps := make(map[Status]time.Time, len(params.StatusTimestamps))
	for s, ts := range params.StatusTimestamps {
		timestamps[s] = ts
	}

	return &Order{
		id:                 params.ID,
		lines:              append([]LineItem(nil), params.Lines...),
		totals:             params.Totals,
		status:             params.Status,
		statusTimestamps:   timestamps,
		statusBeforeCancel: params.StatusBeforeCancel,
		cancellation:       params.Cancellation,
		courier:            params.Courier,
		pod:                params.ProofOfDelivery,
		messages:           append([]DeliveryMessage(nil), params.Messages...),
		attempts:           append([]AttemptRecord(nil), params.Attempts...),
		track:              append([]LocationPoint(nil), params.Track...),
		placedAt:           params.PlacedAt,
		version:            params.Version,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Lines returns a copy of the frozen line items.
func (o *Order) Lines() []LineItem {
	return append([]LineItem(nil), o.lines...)
}

// Totals returns the frozen monetary breakdown.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StatusTimestamps returns a copy of the first-reached time per visited status.
func (o *Order) StatusTimestamps() map[Status]time.Time {
	timestamps := make(map[Status]time.Time, len(o.statusTimestamps))
	for s, ts := range o.statusTimestamps {
		timestamps[s] = ts
	}
	return timestamps
}

// StatusBeforeCancel returns the status recorded when cancellation was
// requested, or Unknown if no request was ever made. Used for the reject
// rollback and exposed for persistence.
func (o *Order) StatusBeforeCancel() Status {
	return o.statusBeforeCancel
}

// Cancellation returns the cancellation negotiation state.
func (o *Order) Cancellation() CancellationState {
	return o.cancellation
}

// Courier returns the active courier assignment, or nil if none.
func (o *Order) Courier() *CourierAssignment {
	if o.courier == nil {
		return nil
	}
	assignment := *o.courier
	return &assignment
}

// ProofOfDelivery returns the captured POD record, or nil if none.
func (o *Order) ProofOfDelivery() *ProofOfDelivery {
	if o.pod == nil {
		return nil
	}
	pod := *o.pod
	return &pod
}

// Messages returns a copy of the append-only delivery message log in insertion order.
func (o *Order) Messages() []DeliveryMessage {
	return append([]DeliveryMessage(nil), o.messages...)
}

// Attempts returns a copy of the failed delivery attempt log.
func (o *Order) Attempts() []AttemptRecord {
	return append([]AttemptRecord(nil), o.attempts...)
}

// Track returns a copy of the accepted location series in arrival order.
func (o *Order) Track() []LocationPoint {
	return append([]LocationPoint(nil), o.track...)
}

// LatestLocation returns the most recent accepted location point, or nil if no
// position has been reported yet.
func (o *Order) LatestLocation() *LocationPoint {
	if len(o.track) == 0 {
		return nil
	}
	point := o.track[len(o.track)-1]
	return &point
}

// PlacedAt returns the order creation time.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int64 {
	return o.version
}

// ChangeStatus applies a status transition requested by any actor. Transitions
// must be strictly forward, or to the cancellation branch; every accepted
// transition stamps the write-once timestamp and appends one system message.
//
// A transition to CancelRequested is routed through RequestCancellation so the
// negotiation state stays consistent. A direct transition to Cancelled with a
// pending request resolves the request as approved (admin force-cancel).
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if target == CancelRequested {
		return o.RequestCancellation(now)
	}
	if target == Delivered && o.pod == nil {
		return errs.NewStateConflictErrorWithCause("status", ErrMissingProofOfDelivery)
	}

	if err := o.applyStatus(target, now); err != nil {
		return err
	}

	if target == Cancelled && o.cancellation == CancellationRequested {
		o.cancellation = CancellationApproved
	}

	return nil
}

// RequestCancellation records the customer's cancellation request. Allowed only
// once per order and only while the order is not terminal. The prior status is
// recorded for a possible rollback on reject.
func (o *Order) RequestCancellation(now time.Time) error {
	if o.cancellation != CancellationNone {
		return errs.NewStateConflictErrorWithCause("cancellation", ErrCancellationAlreadyRequested)
	}

	prior := o.status
	if err := o.applyStatus(CancelRequested, now); err != nil {
		return err
	}

	o.statusBeforeCancel = prior
	o.cancellation = CancellationRequested
	return nil
}

// ApproveCancellation resolves a pending cancellation request by moving the
// order to the terminal Cancelled status.
func (o *Order) ApproveCancellation(now time.Time) error {
	if o.cancellation != CancellationRequested {
		return errs.NewStateConflictErrorWithCause("cancellation", ErrNoActiveCancellationRequest)
	}

	if err := o.applyStatus(Cancelled, now); err != nil {
		return err
	}

	o.cancellation = CancellationApproved
	return nil
}

// RejectCancellation resolves a pending cancellation request by reverting the
// order to the status it held before the request. This is the one sanctioned
// rewind in the state machine; the restored status keeps its original
// timestamp and is not re-stamped.
func (o *Order) RejectCancellation(now time.Time) error {
	if o.cancellation != CancellationRequested {
		return errs.NewStateConflictErrorWithCause("cancellation", ErrNoActiveCancellationRequest)
	}

	prior := o.statusBeforeCancel
	o.status = prior
	o.cancellation = CancellationRejected
	o.appendSystemMessage(fmt.Sprintf("Cancellation rejected, order returned to %s", prior), now)
	return nil
}

// AssignCourier upserts the courier assignment. Assignment is informational and
// legal in any non-terminal status; it never moves the status. Re-assignment
// overwrites the previous assignment and is narrated in the message log.
func (o *Order) AssignCourier(courierName, trackingID, trackingURLPattern string, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewStateConflictErrorWithCause("status",
			fmt.Errorf("%w: cannot assign a courier in %s", ErrOrderIsTerminal, o.status))
	}

	assignment, err := NewCourierAssignment(courierName, trackingID, trackingURLPattern)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Courier %s assigned, tracking id %s", courierName, trackingID)
	if o.courier != nil {
		text = fmt.Sprintf("Courier re-assigned to %s, tracking id %s", courierName, trackingID)
	}
	o.courier = &assignment

	return o.AddMessage(text, ActorAdmin, now)
}

// RecordHubArrival records a hub custody event as a hub-scoped message. It does
// not move the status; hub staff separately drive ORDER_AT_HUB ->
// OUT_FOR_DELIVERY through ChangeStatus once custody is physically handed over.
func (o *Order) RecordHubArrival(hubName, staffName, note string, now time.Time) error {
	if hubName == "" {
		return errs.NewValueIsRequiredError("hubName")
	}
	if staffName == "" {
		return errs.NewValueIsRequiredError("staffName")
	}
	if o.status.IsTerminal() {
		return errs.NewStateConflictErrorWithCause("status",
			fmt.Errorf("%w: cannot record hub custody in %s", ErrOrderIsTerminal, o.status))
	}

	text := fmt.Sprintf("Order received at hub %s by %s", hubName, staffName)
	if note != "" {
		text = fmt.Sprintf("%s: %s", text, note)
	}

	return o.AddMessage(text, ActorHub, now)
}

// RecordAttempt logs a failed delivery attempt. Legal only while the order is
// out for delivery; the status is unchanged.
func (o *Order) RecordAttempt(reason AttemptReason, note, photoRef string, now time.Time) error {
	if o.status != OutForDelivery {
		return errs.NewStateConflictErrorWithCause("status",
			fmt.Errorf("%w: cannot record an attempt in %s", ErrNotOutForDelivery, o.status))
	}

	record, err := NewAttemptRecord(reason, note, photoRef, now)
	if err != nil {
		return err
	}

	o.attempts = append(o.attempts, record)

	text := fmt.Sprintf("Delivery attempt failed: %s", reason)
	if note != "" {
		text = fmt.Sprintf("%s (%s)", text, note)
	}
	return o.AddMessage(text, ActorDeliveryPartner, now)
}

// RecordProofOfDelivery captures the proof of delivery and moves the order to
// the terminal Delivered status. Legal only while out for delivery; recipient
// name and signature reference are mandatory.
func (o *Order) RecordProofOfDelivery(recipientName, signatureRef, photoRef string, now time.Time) error {
	if o.status != OutForDelivery {
		return errs.NewStateConflictErrorWithCause("status",
			fmt.Errorf("%w: cannot record proof of delivery in %s", ErrNotOutForDelivery, o.status))
	}

	pod, err := NewProofOfDelivery(recipientName, signatureRef, photoRef, now)
	if err != nil {
		return err
	}

	o.pod = &pod
	if err := o.AddMessage(fmt.Sprintf("Order delivered to %s", recipientName), ActorDeliveryPartner, now); err != nil {
		return err
	}

	return o.ChangeStatus(Delivered, now)
}

// AddMessage appends one entry to the delivery message log. There is no update
// or delete; corrections are new messages.
func (o *Order) AddMessage(text string, actor Actor, now time.Time) error {
	message, err := NewDeliveryMessage(text, actor, now)
	if err != nil {
		return err
	}

	o.messages = append(o.messages, message)
	return nil
}

// PushLocation ingests one position report. Reports are accepted only while the
// order is out for delivery; pushes in any other status are silently dropped
// (the sending client may not know the order just transitioned) and report
// accepted=false without an error.
func (o *Order) PushLocation(latitude, longitude float64, timestamp time.Time) (bool, error) {
	if o.status != OutForDelivery {
		return false, nil
	}

	point, err := NewLocationPoint(latitude, longitude, timestamp)
	if err != nil {
		return false, err
	}

	o.track = append(o.track, point)
	return true, nil
}

// applyStatus performs the legality check, the write-once stamp, the status
// write, and the system message shared by every accepted transition.
func (o *Order) applyStatus(target Status, now time.Time) error {
	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}
	if _, visited := o.statusTimestamps[target]; visited {
		return errs.NewStateConflictErrorWithCause("status", ErrAlreadyInStatus)
	}

	o.status = target
	o.statusTimestamps[target] = now
	o.appendSystemMessage(fmt.Sprintf("Order status changed to %s", target), now)
	return nil
}

// appendSystemMessage appends a system-authored narration entry. Text is always
// non-empty at call sites, so construction cannot fail.
func (o *Order) appendSystemMessage(text string, now time.Time) {
	o.messages = append(o.messages, DeliveryMessage{
		text:      text,
		actor:     ActorSystem,
		timestamp: now,
	})
}
