package ledger

import (
	"time"

	"delivery_ledger/internal/models"
)

// AllCouriers and AllAreas are selection sentinels meaning no filter.
const (
	AllCouriers = "All"
	AllAreas    = "All"
)

type Dated interface {
	RecordDate() time.Time
}

type CourierScoped interface {
	Dated
	CourierKey() string
}

// DateRange selects events between From and To. A nil To means the single
// day of From.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// FilterByDateRange keeps events with From <= date <= end of To's day.
// From is compared as given; callers wanting whole days pass StartOfDay.
// A nil range or nil From returns events unchanged.
func FilterByDateRange[T Dated](events []T, r *DateRange) []T {
	if r == nil || r.From == nil {
		return events
	}
	from := *r.From
	to := from
	if r.To != nil {
		to = *r.To
	}
	upper := EndOfDay(to)

	out := make([]T, 0, len(events))
	for _, e := range events {
		d := e.RecordDate()
		if d.Before(from) || d.After(upper) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterByCourier keeps events whose courier key matches exactly.
func FilterByCourier[T CourierScoped](events []T, courier string) []T {
	if courier == "" || courier == AllCouriers {
		return events
	}
	out := make([]T, 0, len(events))
	for _, e := range events {
		if e.CourierKey() == courier {
			out = append(out, e)
		}
	}
	return out
}

// FilterByArea keeps entries that delivered or returned parcels in area and
// narrows their counters to that area. RVP is kept on every surviving entry.
func FilterByArea(entries []models.DeliveryEntry, area string) []models.DeliveryEntry {
	if area == "" || area == AllAreas {
		return entries
	}
	out := make([]models.DeliveryEntry, 0, len(entries))
	for _, e := range entries {
		c := e.Count(models.Area(area))
		if c.Delivered <= 0 && c.Returned <= 0 {
			continue
		}
		e.Areas = []models.AreaCount{c}
		out = append(out, e)
	}
	return out
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
