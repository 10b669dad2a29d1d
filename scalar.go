package untree

import (
	"encoding/json"
	"fmt"
	"golang.org/x/exp/constraints"
	"math"
	"strconv"
)

func (d *Decoder) unboxBool(node any, target *bool) error {
	value, err := d.asBool(node)
	if err != nil {
		return err
	}

	*target = value
	return nil
}

func (d *Decoder) unboxText(node any, target *string) error {
	value, err := d.asText(node)
	if err != nil {
		return err
	}

	*target = value
	return nil
}

// setInt extracts an integer and stores it into a signed target of any
// width. Values outside [minValue, maxValue] are corrupt data: the node
// held an integer, it just does not fit.
func setInt[T constraints.Signed](d *Decoder, node any, target *T, minValue, maxValue int64) error {
	value, err := d.asInt(node)
	if err != nil {
		return err
	}

	if value < minValue || value > maxValue {
		return d.numberOutOfRange(value, *target)
	}

	*target = T(value)
	return nil
}

// setUint is the unsigned counterpart of setInt.
func setUint[T constraints.Unsigned](d *Decoder, node any, target *T, maxValue uint64) error {
	value, err := d.asUint(node)
	if err != nil {
		return err
	}

	if value > maxValue {
		return d.numberOutOfRange(value, *target)
	}

	*target = T(value)
	return nil
}

func setFloat[T constraints.Float](d *Decoder, node any, target *T, maxValue float64) error {
	value, err := d.asFloat(node)
	if err != nil {
		return err
	}

	if math.Abs(value) > maxValue && !math.IsInf(value, 0) {
		return d.numberOutOfRange(value, *target)
	}

	*target = T(value)
	return nil
}

func (d *Decoder) numberOutOfRange(value any, target any) error {
	reason := fmt.Sprintf("number %v does not fit into %T", value, target)
	return d.corrupted(reason, strconv.ErrRange)
}

func (d *Decoder) asBool(node any) (bool, error) {
	if value, ok := node.(bool); ok {
		return value, nil
	}

	return false, d.typeMismatch("bool", node)
}

func (d *Decoder) asText(node any) (string, error) {
	if value, ok := node.(string); ok {
		return value, nil
	}

	return "", d.typeMismatch("text", node)
}

// asInt extracts an integer from any numeric node kind. Integer nodes of
// every width convert directly, float nodes only when exactly integral.
func (d *Decoder) asInt(node any) (int64, error) {
	switch value := node.(type) {
	case int:
		return int64(value), nil
	case int8:
		return int64(value), nil
	case int16:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint:
		return d.uintToInt(uint64(value))
	case uint8:
		return int64(value), nil
	case uint16:
		return int64(value), nil
	case uint32:
		return int64(value), nil
	case uint64:
		return d.uintToInt(value)
	case float32:
		return d.floatToInt(float64(value))
	case float64:
		return d.floatToInt(value)
	case json.Number:
		if parsed, err := strconv.ParseInt(string(value), 10, 64); err == nil {
			return parsed, nil
		}

		parsed, err := value.Float64()
		if err != nil {
			return 0, d.corrupted(fmt.Sprintf("parse number %q", string(value)), err)
		}

		return d.floatToInt(parsed)
	}

	return 0, d.typeMismatch("integer", node)
}

// asUint is the unsigned counterpart of asInt. Negative values do not
// convert.
func (d *Decoder) asUint(node any) (uint64, error) {
	switch value := node.(type) {
	case int:
		return d.intToUint(int64(value))
	case int8:
		return d.intToUint(int64(value))
	case int16:
		return d.intToUint(int64(value))
	case int32:
		return d.intToUint(int64(value))
	case int64:
		return d.intToUint(value)
	case uint:
		return uint64(value), nil
	case uint8:
		return uint64(value), nil
	case uint16:
		return uint64(value), nil
	case uint32:
		return uint64(value), nil
	case uint64:
		return value, nil
	case float32:
		return d.floatToUint(float64(value))
	case float64:
		return d.floatToUint(value)
	case json.Number:
		if parsed, err := strconv.ParseUint(string(value), 10, 64); err == nil {
			return parsed, nil
		}

		parsed, err := value.Float64()
		if err != nil {
			return 0, d.corrupted(fmt.Sprintf("parse number %q", string(value)), err)
		}

		return d.floatToUint(parsed)
	}

	return 0, d.typeMismatch("integer", node)
}

// asFloat extracts a float from any numeric node kind.
func (d *Decoder) asFloat(node any) (float64, error) {
	switch value := node.(type) {
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int8:
		return float64(value), nil
	case int16:
		return float64(value), nil
	case int32:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case uint:
		return float64(value), nil
	case uint8:
		return float64(value), nil
	case uint16:
		return float64(value), nil
	case uint32:
		return float64(value), nil
	case uint64:
		return float64(value), nil
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, d.corrupted(fmt.Sprintf("parse number %q", string(value)), err)
		}

		return parsed, nil
	}

	return 0, d.typeMismatch("float", node)
}

func (d *Decoder) uintToInt(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, d.numberOutOfRange(value, int64(0))
	}

	return int64(value), nil
}

func (d *Decoder) intToUint(value int64) (uint64, error) {
	if value < 0 {
		return 0, d.numberOutOfRange(value, uint64(0))
	}

	return uint64(value), nil
}

// floatToInt converts a float node to an integer. Only exactly integral
// values convert, everything else is corrupt data rather than a type
// mismatch: the node did hold a number.
func (d *Decoder) floatToInt(value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Trunc(value) != value {
		return 0, d.corrupted(fmt.Sprintf("number %v is not an integer", value), nil)
	}

	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, d.numberOutOfRange(value, int64(0))
	}

	return int64(value), nil
}

func (d *Decoder) floatToUint(value float64) (uint64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Trunc(value) != value {
		return 0, d.corrupted(fmt.Sprintf("number %v is not an integer", value), nil)
	}

	if value < 0 || value >= math.MaxUint64 {
		return 0, d.numberOutOfRange(value, uint64(0))
	}

	return uint64(value), nil
}
