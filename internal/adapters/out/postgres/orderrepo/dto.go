// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Scalar lifecycle fields map to indexed columns for querying; the aggregate's
// child collections (lines, timestamps, messages, attempts, track) are stored
// as JSONB documents since they are only ever read back whole, through the
// aggregate root.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status             int       `gorm:"index"`
	CancellationState  int
	StatusBeforeCancel int

	Subtotal   decimal.Decimal `gorm:"type:numeric"`
	Tax        decimal.Decimal `gorm:"type:numeric"`
	Shipping   decimal.Decimal `gorm:"type:numeric"`
	Discount   decimal.Decimal `gorm:"type:numeric"`
	GrandTotal decimal.Decimal `gorm:"type:numeric"`
	CouponCode string

	Lines            json.RawMessage `gorm:"type:jsonb"`
	StatusTimestamps json.RawMessage `gorm:"type:jsonb"`
	Courier          json.RawMessage `gorm:"type:jsonb"`
	ProofOfDelivery  json.RawMessage `gorm:"type:jsonb"`
	Messages         json.RawMessage `gorm:"type:jsonb"`
	Attempts         json.RawMessage `gorm:"type:jsonb"`
	Track            json.RawMessage `gorm:"type:jsonb"`

	PlacedAt time.Time
	Version  int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type lineItemDoc struct {
	Kind      string          `json:"kind"`
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type courierDoc struct {
	CourierName        string `json:"courierName"`
	TrackingID         string `json:"trackingId"`
	TrackingURLPattern string `json:"trackingUrlPattern,omitempty"`
}

type proofOfDeliveryDoc struct {
	RecipientName string    `json:"recipientName"`
	SignatureRef  string    `json:"signatureRef"`
	PhotoRef      string    `json:"photoRef,omitempty"`
	CapturedAt    time.Time `json:"capturedAt"`
}

type messageDoc struct {
	Text      string    `json:"text"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

type attemptDoc struct {
	Reason    string    `json:"reason"`
	Note      string    `json:"note,omitempty"`
	PhotoRef  string    `json:"photoRef,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type locationDoc struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	totals := aggregate.Totals()

	lines := make([]lineItemDoc, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineItemDoc{
			Kind:      string(line.Kind()),
			ItemID:    line.ItemID(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice(),
		})
	}

	timestamps := make(map[string]time.Time, len(aggregate.StatusTimestamps()))
	for s, ts := range aggregate.StatusTimestamps() {
		timestamps[s.String()] = ts
	}

	var courier *courierDoc
	if assignment := aggregate.Courier(); assignment != nil {
		courier = &courierDoc{
			CourierName:        assignment.CourierName(),
			TrackingID:         assignment.TrackingID(),
			TrackingURLPattern: assignment.TrackingURLPattern(),
		}
	}

	var pod *proofOfDeliveryDoc
	if record := aggregate.ProofOfDelivery(); record != nil {
		pod = &proofOfDeliveryDoc{
			RecipientName: record.RecipientName(),
			SignatureRef:  record.SignatureRef(),
			PhotoRef:      record.PhotoRef(),
			CapturedAt:    record.CapturedAt(),
		}
	}

	messages := make([]messageDoc, 0, len(aggregate.Messages()))
	for _, m := range aggregate.Messages() {
		messages = append(messages, messageDoc{
			Text:      m.Text(),
			Actor:     string(m.Actor()),
			Timestamp: m.Timestamp(),
		})
	}

	attempts := make([]attemptDoc, 0, len(aggregate.Attempts()))
	for _, a := range aggregate.Attempts() {
		attempts = append(attempts, attemptDoc{
			Reason:    string(a.Reason()),
			Note:      a.Note(),
			PhotoRef:  a.PhotoRef(),
			Timestamp: a.Timestamp(),
		})
	}

	track := make([]locationDoc, 0, len(aggregate.Track()))
	for _, p := range aggregate.Track() {
		track = append(track, locationDoc{
			Latitude:  p.Latitude(),
			Longitude: p.Longitude(),
			Timestamp: p.Timestamp(),
		})
	}

	dto := OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Status:             int(aggregate.Status()),
		CancellationState:  int(aggregate.Cancellation()),
		StatusBeforeCancel: int(aggregate.StatusBeforeCancel()),
		Subtotal:           totals.Subtotal(),
		Tax:                totals.Tax(),
		Shipping:           totals.Shipping(),
		Discount:           totals.Discount(),
		GrandTotal:         totals.GrandTotal(),
		CouponCode:         totals.CouponCode(),
		PlacedAt:           aggregate.PlacedAt(),
		Version:            aggregate.Version(),
	}

	var err error
	if dto.Lines, err = json.Marshal(lines); err != nil {
		return OrderDTO{}, err
	}
	if dto.StatusTimestamps, err = json.Marshal(timestamps); err != nil {
		return OrderDTO{}, err
	}
	if dto.Courier, err = json.Marshal(courier); err != nil {
		return OrderDTO{}, err
	}
	if dto.ProofOfDelivery, err = json.Marshal(pod); err != nil {
		return OrderDTO{}, err
	}
	if dto.Messages, err = json.Marshal(messages); err != nil {
		return OrderDTO{}, err
	}
	if dto.Attempts, err = json.Marshal(attempts); err != nil {
		return OrderDTO{}, err
	}
	if dto.Track, err = json.Marshal(track); err != nil {
		return OrderDTO{}, err
	}

	return dto, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lineDocs []lineItemDoc
	if err = json.Unmarshal(dto.Lines, &lineDocs); err != nil {
		return nil, err
	}
	lines := make([]order.LineItem, 0, len(lineDocs))
	for _, doc := range lineDocs {
		kind, kindErr := order.LineKindFromString(doc.Kind)
		if kindErr != nil {
			return nil, kindErr
		}
		line, lineErr := order.RestoreLineItem(kind, doc.ItemID, doc.Quantity, doc.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	totals, err := order.NewTotals(dto.Subtotal, dto.Tax, dto.Shipping, dto.Discount, dto.GrandTotal, dto.CouponCode)
	if err != nil {
		return nil, err
	}

	var timestampDocs map[string]time.Time
	if err = json.Unmarshal(dto.StatusTimestamps, &timestampDocs); err != nil {
		return nil, err
	}
	timestamps := make(map[order.Status]time.Time, len(timestampDocs))
	for name, ts := range timestampDocs {
		status, statusErr := order.StatusFromString(name)
		if statusErr != nil {
			return nil, statusErr
		}
		timestamps[status] = ts
	}

	var courierDocPtr *courierDoc
	if err = json.Unmarshal(dto.Courier, &courierDocPtr); err != nil {
		return nil, err
	}
	var courier *order.CourierAssignment
	if courierDocPtr != nil {
		assignment, courierErr := order.NewCourierAssignment(
			courierDocPtr.CourierName, courierDocPtr.TrackingID, courierDocPtr.TrackingURLPattern)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &assignment
	}

	var podDocPtr *proofOfDeliveryDoc
	if err = json.Unmarshal(dto.ProofOfDelivery, &podDocPtr); err != nil {
		return nil, err
	}
	var pod *order.ProofOfDelivery
	if podDocPtr != nil {
		record, podErr := order.NewProofOfDelivery(
			podDocPtr.RecipientName, podDocPtr.SignatureRef, podDocPtr.PhotoRef, podDocPtr.CapturedAt)
		if podErr != nil {
			return nil, podErr
		}
		pod = &record
	}

	var messageDocs []messageDoc
	if err = json.Unmarshal(dto.Messages, &messageDocs); err != nil {
		return nil, err
	}
	messages := make([]order.DeliveryMessage, 0, len(messageDocs))
	for _, doc := range messageDocs {
		actor, actorErr := order.ActorFromString(doc.Actor)
		if actorErr != nil {
			return nil, actorErr
		}
		message, messageErr := order.NewDeliveryMessage(doc.Text, actor, doc.Timestamp)
		if messageErr != nil {
			return nil, messageErr
		}
		messages = append(messages, message)
	}

	var attemptDocs []attemptDoc
	if err = json.Unmarshal(dto.Attempts, &attemptDocs); err != nil {
		return nil, err
	}
	attempts := make([]order.AttemptRecord, 0, len(attemptDocs))
	for _, doc := range attemptDocs {
		reason, reasonErr := order.AttemptReasonFromString(doc.Reason)
		if reasonErr != nil {
			return nil, reasonErr
		}
		record, attemptErr := order.NewAttemptRecord(reason, doc.Note, doc.PhotoRef, doc.Timestamp)
		if attemptErr != nil {
			return nil, attemptErr
		}
		attempts = append(attempts, record)
	}

	var trackDocs []locationDoc
	if err = json.Unmarshal(dto.Track, &trackDocs); err != nil {
		return nil, err
	}
	track := make([]order.LocationPoint, 0, len(trackDocs))
	for _, doc := range trackDocs {
		point, pointErr := order.NewLocationPoint(doc.Latitude, doc.Longitude, doc.Timestamp)
		if pointErr != nil {
			return nil, pointErr
		}
		track = append(track, point)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		Lines:              lines,
		Totals:             totals,
		Status:             order.Status(dto.Status),
		StatusTimestamps:   timestamps,
		StatusBeforeCancel: order.Status(dto.StatusBeforeCancel),
		Cancellation:       order.CancellationState(dto.CancellationState),
		Courier:            courier,
		ProofOfDelivery:    pod,
		Messages:           messages,
		Attempts:           attempts,
		Track:              track,
		PlacedAt:           dto.PlacedAt,
		Version:            dto.Version,
	})
}
