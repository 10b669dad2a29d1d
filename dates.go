package untree

import (
	"fmt"
	"math"
	"time"
)

// DateStrategy selects how [time.Time] targets decode. The zero value is
// [DateDeferred]. Strategies are configured once via
// [Decoder.WithDateStrategy] and inherited read-only by every nested and
// child engine.
type DateStrategy struct {
	mode   dateMode
	layout string
	fn     func(d *Decoder) (time.Time, error)
}

type dateMode int

const (
	dateDeferred dateMode = iota
	dateUnixSeconds
	dateUnixMilliseconds
	dateRFC3339
	dateLayout
	dateFunc
)

// DateDeferred decodes dates the way the date type itself would: native
// time.Time nodes pass through, text nodes parse per RFC 3339. This is
// the default.
func DateDeferred() DateStrategy {
	return DateStrategy{mode: dateDeferred}
}

// DateUnixSeconds decodes dates from a number of seconds since the unix
// epoch. Fractional seconds are kept.
func DateUnixSeconds() DateStrategy {
	return DateStrategy{mode: dateUnixSeconds}
}

// DateUnixMilliseconds decodes dates from a number of milliseconds since
// the unix epoch.
func DateUnixMilliseconds() DateStrategy {
	return DateStrategy{mode: dateUnixMilliseconds}
}

// DateRFC3339 decodes dates from RFC 3339 text, with or without
// fractional seconds.
func DateRFC3339() DateStrategy {
	return DateStrategy{mode: dateRFC3339}
}

// DateLayout decodes dates from text in the given [time.Parse] layout.
func DateLayout(layout string) DateStrategy {
	return DateStrategy{mode: dateLayout, layout: layout}
}

// DateFunc hands date decoding over to fn. The engine passed to fn is
// positioned on the node to decode, so fn may read it in any way it sees
// fit, including through containers.
func DateFunc(fn func(d *Decoder) (time.Time, error)) DateStrategy {
	return DateStrategy{mode: dateFunc, fn: fn}
}

func (d *Decoder) unboxTime(node any, target *time.Time) error {
	if isNil(node) {
		return d.valueNotFound("time.Time")
	}

	// native dates pass through under every strategy
	if value, ok := node.(time.Time); ok {
		*target = value
		return nil
	}

	switch s := d.dates; s.mode {
	case dateUnixSeconds:
		seconds, err := d.asFloat(node)
		if err != nil {
			return err
		}

		*target = epochToTime(seconds)
		return nil

	case dateUnixMilliseconds:
		millis, err := d.asFloat(node)
		if err != nil {
			return err
		}

		*target = epochToTime(millis / 1000)
		return nil

	case dateRFC3339:
		text, err := d.asText(node)
		if err != nil {
			return err
		}

		// the nano layout also accepts timestamps without fractions
		value, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return d.corrupted(fmt.Sprintf("parse date %q", text), err)
		}

		*target = value
		return nil

	case dateLayout:
		text, err := d.asText(node)
		if err != nil {
			return err
		}

		value, err := time.Parse(s.layout, text)
		if err != nil {
			return d.corrupted(fmt.Sprintf("parse date %q", text), err)
		}

		*target = value
		return nil

	case dateFunc:
		d.stack.push(node)
		defer d.stack.pop()

		value, err := s.fn(d)
		if err != nil {
			return err
		}

		*target = value
		return nil

	default: // deferred to the date type's own decoding
		text, err := d.asText(node)
		if err != nil {
			return err
		}

		if err := target.UnmarshalText([]byte(text)); err != nil {
			return d.corrupted(fmt.Sprintf("parse date %q", text), err)
		}

		return nil
	}
}

// epochToTime builds a time from fractional seconds since the unix epoch,
// normalized to UTC.
func epochToTime(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
