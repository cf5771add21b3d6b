package errs_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("couponCode")

		assert.Equal(t, "couponCode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: couponCode", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("couponCode", cause)

		assert.Equal(t, "couponCode", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: couponCode (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("discountPercent", 150, 1, 100)

		assert.Equal(t, "discountPercent", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is discountPercent, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", -5, 1, 100, cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is quantity, min value is 1, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("recipientName")

		assert.Equal(t, "recipientName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: recipientName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("recipientName", cause)

		assert.Equal(t, "recipientName", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: recipientName (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("NewVersionIsInvalidError", func(t *testing.T) {
		cause := errors.New("stale version")
		err := errs.NewVersionIsInvalidError("version", cause)

		assert.Equal(t, "version", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: version (cause: stale version)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("NewVersionIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("version")

		assert.Equal(t, "version", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: version", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestStateConflictError(t *testing.T) {
	t.Run("NewStateConflictError", func(t *testing.T) {
		err := errs.NewStateConflictError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "state conflict: status", err.Error())
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("NewStateConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("order is already delivered")
		err := errs.NewStateConflictErrorWithCause("status", cause)

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "state conflict: status (cause: order is already delivered)", err.Error())
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("cause is reachable through errors.Is", func(t *testing.T) {
		cause := errors.New("no active cancellation request")
		err := errs.NewStateConflictErrorWithCause("cancellation", cause)
		require.ErrorIs(t, err, cause)
	})
}

func TestConcurrencyConflictError(t *testing.T) {
	t.Run("NewConcurrencyConflictError", func(t *testing.T) {
		err := errs.NewConcurrencyConflictError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "concurrency conflict: 123", err.Error())
		assert.Equal(t, errs.ErrConcurrencyConflict, err.Unwrap())
	})

	t.Run("NewConcurrencyConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("version mismatch")
		err := errs.NewConcurrencyConflictErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"concurrency conflict: param is: order, ID is: 123 (cause: version mismatch)",
			err.Error())
		assert.Equal(t, errs.ErrConcurrencyConflict, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
		require.Error(t, errs.ErrStateConflict)
		require.Error(t, errs.ErrConcurrencyConflict)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
		assert.Equal(t, "state conflict", errs.ErrStateConflict.Error())
		assert.Equal(t, "concurrency conflict", errs.ErrConcurrencyConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("orderId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("couponCode")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("discountPercent", 150, 1, 100)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("recipientName")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		versionInvalidErr := errs.NewVersionIsInvalidError("version", errors.New("test"))
		require.ErrorIs(t, versionInvalidErr, errs.ErrVersionIsInvalid)

		stateConflictErr := errs.NewStateConflictError("status")
		require.ErrorIs(t, stateConflictErr, errs.ErrStateConflict)

		concurrencyErr := errs.NewConcurrencyConflictError("order", "123")
		require.ErrorIs(t, concurrencyErr, errs.ErrConcurrencyConflict)
	})
}
