package domain

type Location string

const (
	LocationOffice         Location = "office"
	LocationAirportOtopeni Location = "airport_otopeni"
	LocationAirportCluj    Location = "airport_cluj"
)

// Locations lists every valid pickup/dropoff location.
var Locations = []Location{LocationOffice, LocationAirportOtopeni, LocationAirportCluj}

func (l Location) Valid() bool {
	for _, loc := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// PickupFeeName and DropoffFeeName derive the fee schedule entry names for a location.
func PickupFeeName(l Location) string  { return string(l) + "_pickup" }
func DropoffFeeName(l Location) string { return string(l) + "_dropoff" }

// FeeOutsideHours is the fee charged once per leg outside working hours.
const FeeOutsideHours = "outside_hours_fee"

// RateBucket is one of the fixed day-count ranges used to pick a daily rate.
// MaxDays == 0 means open-ended.
type RateBucket struct {
	Key     string
	MinDays int32
	MaxDays int32
}

// RateBuckets is ordered and contiguous; rate lookup falls back to the
// nearest lower configured bucket, then the nearest higher one.
var RateBuckets = []RateBucket{
	{Key: "1-2", MinDays: 1, MaxDays: 2},
	{Key: "3-7", MinDays: 3, MaxDays: 7},
	{Key: "8-20", MinDays: 8, MaxDays: 20},
	{Key: "21-45", MinDays: 21, MaxDays: 45},
	{Key: "46+", MinDays: 46, MaxDays: 0},
}

type Car struct {
	ID          int32  `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	IsActive    bool   `json:"is_active"`
	// DailyRates maps a rate bucket key to a daily rate in cents. A zero or
	// missing entry means the bucket is not configured for this car.
	DailyRates map[string]int32 `json:"daily_rates"`
	// InsuranceDayRates maps an insurance plan name to its per-day cost in cents.
	InsuranceDayRates map[string]int32 `json:"insurance_day_rates"`
	CreatedOn         string           `json:"created_on"`
	UpdatedOn         string           `json:"updated_on"`
}

// Fee is a single named surcharge. Inactive fees are treated as zero.
type Fee struct {
	Name        string `json:"name"`
	AmountCents int32  `json:"amount_cents"`
	IsActive    bool   `json:"is_active"`
}

// FeeSchedule is the set of named surcharges, keyed by name.
type FeeSchedule map[string]Fee

// Amount returns the fee amount for name, or zero when the fee is missing
// or toggled off.
func (fs FeeSchedule) Amount(name string) int32 {
	fee, ok := fs[name]
	if !ok || !fee.IsActive {
		return 0
	}
	return fee.AmountCents
}
