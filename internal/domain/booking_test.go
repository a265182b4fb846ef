package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		current BookingStatus
		target  BookingStatus
		want    bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to pending", BookingStatusPending, BookingStatusPending, false},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, false},
		{"confirmed to confirmed", BookingStatusConfirmed, BookingStatusConfirmed, false},
		{"cancelled to confirmed", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"pending to unknown", BookingStatusPending, BookingStatus("Expired"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := Booking{Status: tc.current}
			assert.Equal(t, tc.want, b.CanTransitionTo(tc.target))
		})
	}
}

func TestBookingID_UnmarshalJSON(t *testing.T) {
	var bookings []Booking
	raw := `[{"id":1712345678901,"user":"alice","car":"Ertiga","status":"Pending","totalPrice":30000},
	         {"id":"7","user":"bob","car":"Swift","status":"Confirmed","totalPrice":7000,"date":"2025-04-02","registered":"4/1/2025"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &bookings))

	require.Len(t, bookings, 2)
	assert.Equal(t, BookingID(1712345678901), bookings[0].ID)
	assert.Equal(t, BookingID(7), bookings[1].ID)
	assert.Equal(t, "2025-04-02", bookings[1].Date)

	var id BookingID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestBooking_MarshalShape(t *testing.T) {
	data, err := json.Marshal(Booking{ID: 3, User: "alice", Car: "Ertiga", Status: BookingStatusPending, TotalPrice: 30000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"user":"alice","car":"Ertiga","status":"Pending","totalPrice":30000}`, string(data))
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingStatusConfirmed.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatus("Expired").Terminal())
}

func TestCountByStatus(t *testing.T) {
	bookings := []Booking{
		{Status: BookingStatusConfirmed},
		{Status: BookingStatusPending},
		{Status: BookingStatusConfirmed},
	}
	assert.Equal(t, 2, CountByStatus(bookings, BookingStatusConfirmed))
	assert.Equal(t, 0, CountByStatus(nil, BookingStatusConfirmed))
}
