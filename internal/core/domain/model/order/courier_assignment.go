package order

import (
	"orderflow/internal/pkg/errs"
)

// CourierAssignment names the courier carrying an order together with the
// tracking id issued for it. One assignment is active per order; re-assignment
// overwrites the previous one and is narrated in the messaging log.
type CourierAssignment struct {
	courierName        string
	trackingID         string
	trackingURLPattern string
}

// NewCourierAssignment validates and creates an assignment. The URL pattern is
// an optional external tracking template (e.g. "https://track.example/%s").
func NewCourierAssignment(courierName, trackingID, trackingURLPattern string) (CourierAssignment, error) {
	if courierName == "" {
		return CourierAssignment{}, errs.NewValueIsRequiredError("courierName")
	}
	if trackingID == "" {
		return CourierAssignment{}, errs.NewValueIsRequiredError("trackingId")
	}

	return CourierAssignment{
		courierName:        courierName,
		trackingID:         trackingID,
		trackingURLPattern: trackingURLPattern,
	}, nil
}

// CourierName returns the courier's display name.
func (c CourierAssignment) CourierName() string {
	return c.courierName
}

// TrackingID returns the tracking id issued for the order.
func (c CourierAssignment) TrackingID() string {
	return c.trackingID
}

// TrackingURLPattern returns the optional external tracking URL template.
func (c CourierAssignment) TrackingURLPattern() string {
	return c.trackingURLPattern
}
