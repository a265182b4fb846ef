package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// BookingID is numeric on the wire, but older records may carry it as a
// numeric string, so both are accepted when decoding.
type BookingID int64

func (id *BookingID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = BookingID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("booking id: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("booking id %q: %w", s, err)
	}
	*id = BookingID(n)
	return nil
}

func ParseBookingID(raw string) (BookingID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return BookingID(n), nil
}

type Booking struct {
	ID         BookingID     `json:"id"`
	User       string        `json:"user"`
	Car        string        `json:"car"`
	Status     BookingStatus `json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	Date       string        `json:"date,omitempty"`
	Registered string        `json:"registered,omitempty"`
}

// CanTransitionTo is the whole lifecycle: Pending moves once, to Confirmed or
// Cancelled, and both of those are final.
func (b Booking) CanTransitionTo(target BookingStatus) bool {
	return b.Status == BookingStatusPending && target.Terminal()
}

// NewBooking carries what the checkout flow (or an admin) supplies; the
// store fills in id, status and registration date.
type NewBooking struct {
	User       string
	Car        string
	TotalPrice float64
	Date       string
}

func CountByStatus(bookings []Booking, status BookingStatus) int {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}
