package bookings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinPayloadRoundTrip(t *testing.T) {
	payload := CheckinPayload("b12345", "AB123")

	bookingID, cin, err := VerifyCheckinPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "b12345", bookingID)
	assert.Equal(t, "AB123", cin)
}

func TestCheckinPayloadTamperedIDRejected(t *testing.T) {
	payload := CheckinPayload("b12345", "AB123")
	tampered := strings.Replace(payload, "b12345", "b99999", 1)

	_, _, err := VerifyCheckinPayload(tampered)
	assert.EqualError(t, err, "invalid signature")
}

func TestCheckinPayloadTamperedCINRejected(t *testing.T) {
	payload := CheckinPayload("b12345", "AB123")
	tampered := strings.Replace(payload, "AB123", "ZZ999", 1)

	_, _, err := VerifyCheckinPayload(tampered)
	assert.EqualError(t, err, "invalid signature")
}

func TestCheckinPayloadBadFormat(t *testing.T) {
	for _, payload := range []string{"", "just-one-part", "a|b", "a|b|c|d"} {
		_, _, err := VerifyCheckinPayload(payload)
		assert.Error(t, err, payload)
	}
}
