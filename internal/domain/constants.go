package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking code format: GN-YYYYMMDD### with a per-day sequence.
const (
	BookingCodePrefix     = "GN"
	BookingCodeDateFormat = "20060102"
)

// Business defaults. Deposit and squeeze fee are overridable via config;
// these are the salon's standing rates.
var (
	DefaultDepositRequired = decimal.NewFromInt(500)
	DefaultSqueezeInFee    = decimal.NewFromInt(500)
)

// Business validation constants
const (
	MaxNotesLength        = 1000
	MaxStatusReasonLength = 500
	MaxSlotsPerBooking    = 4
	MaxInvoiceItems       = 30
)

// Appointment-time math runs in the salon's local timezone.
const timezoneName = "Asia/Manila"

var (
	manilaOnce sync.Once
	manilaLoc  *time.Location
)

// ManilaLocation returns the salon timezone. Falls back to a fixed UTC+8
// zone when tzdata is unavailable in the runtime image.
func ManilaLocation() *time.Location {
	manilaOnce.Do(func() {
		loc, err := time.LoadLocation(timezoneName)
		if err != nil {
			loc = time.FixedZone("PHT", 8*60*60)
		}
		manilaLoc = loc
	})
	return manilaLoc
}
