package untree

import (
	"errors"
	"github.com/stretchr/testify/require"
	"net/url"
	"testing"
	"time"
)

func TestUnmarshalKeyed(t *testing.T) {
	tree := map[string]any{
		"name": "Tatsuya Tanaka",
		"age":  24,
	}

	value, err := UnmarshalNew[student](tree)
	require.NoError(t, err)
	require.Equal(t, value, student{Name: "Tatsuya Tanaka", Age: 24})
}

func TestUnmarshalDateStrategy(t *testing.T) {
	tree := map[string]any{
		"name":     "张三",
		"age":      18,
		"birthday": 1700000000.0,
	}

	dec := NewDecoder().WithDateStrategy(DateUnixSeconds())

	value, err := UnmarshalNewWith[profile](dec, tree)
	require.NoError(t, err)
	require.Equal(t, value.Name, "张三")
	require.Equal(t, value.Age, 18)
	require.Equal(t, value.Birthday, time.Unix(1700000000, 0).UTC())
	require.Nil(t, value.HomePage)
}

func TestUnmarshalOptionalAbsent(t *testing.T) {
	tree := map[string]any{
		"name": "张三",
		"age":  18,
	}

	value, err := UnmarshalNew[profile](tree)
	require.NoError(t, err)
	require.Equal(t, value, profile{Name: "张三", Age: 18})
}

func TestUnmarshalScalarMismatch(t *testing.T) {
	read := unmarshalFunc(func(d *Decoder) error {
		var accepted bool
		return d.SingleValueContainer().Decode(&accepted)
	})

	err := Unmarshal("string", &read)
	require.ErrorIs(t, err, ErrTypeMismatch)

	var mismatch TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, mismatch.Expected, "bool")
	require.Equal(t, mismatch.Actual, "text")
	require.Equal(t, mismatch.Path.String(), "/")
}

func TestUnmarshalNested(t *testing.T) {
	tree := map[string]any{
		"name": "go-gum",
		"office": map[string]any{
			"city": "Zürich",
			"zip":  8015,
		},
	}

	value, err := UnmarshalNew[company](tree)
	require.NoError(t, err)
	require.Equal(t, value, company{
		Name:   "go-gum",
		Office: office{City: "Zürich", Zip: 8015},
	})
}

func TestUnmarshalNestedErrorPath(t *testing.T) {
	tree := map[string]any{
		"name": "go-gum",
		"office": map[string]any{
			"city": 1,
			"zip":  8015,
		},
	}

	_, err := UnmarshalNew[company](tree)

	var mismatch TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, mismatch.Expected, "text")
	require.Equal(t, mismatch.Actual, "integer")
	require.Equal(t, mismatch.Path.String(), "/office/city")
}

func TestUnmarshalSuper(t *testing.T) {
	tree := map[string]any{
		"name":  "Albert",
		"super": map[string]any{"id": 7},
	}

	value, err := UnmarshalNew[employee](tree)
	require.NoError(t, err)
	require.Equal(t, value, employee{entity: entity{ID: 7}, Name: "Albert"})
}

func TestUnmarshalSuperErrorPath(t *testing.T) {
	tree := map[string]any{
		"name":  "Albert",
		"super": map[string]any{"id": "seven"},
	}

	_, err := UnmarshalNew[employee](tree)

	var mismatch TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, mismatch.Path.String(), "/super/id")
}

func TestUnmarshalSuperMissing(t *testing.T) {
	tree := map[string]any{"name": "Albert"}

	read := unmarshalFunc(func(d *Decoder) error {
		keyed, err := d.KeyedContainer()
		if err != nil {
			return err
		}

		// a missing super entry scopes the engine to null
		super := keyed.SuperDecoder()
		require.True(t, super.SingleValueContainer().DecodeNil())

		var id int
		err = super.Decode(&id)
		require.ErrorIs(t, err, ErrValueNotFound)

		var notFound ValueNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, notFound.Path.String(), "/super")

		_, err = super.KeyedContainer()
		require.ErrorIs(t, err, ErrValueNotFound)

		return nil
	})

	require.NoError(t, Unmarshal(tree, &read))
}

func TestUnmarshalAnyTarget(t *testing.T) {
	subtree := map[string]any{"leave": []any{"as", "is"}}

	value, err := UnmarshalNew[any](subtree)
	require.NoError(t, err)
	require.Equal(t, value, subtree)

	value, err = UnmarshalNew[any](nil)
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestUnmarshalNullIntoUnmarshaler(t *testing.T) {
	var called bool
	read := unmarshalFunc(func(d *Decoder) error {
		called = true
		return nil
	})

	err := Unmarshal(nil, &read)
	require.ErrorIs(t, err, ErrValueNotFound)
	require.False(t, called)
}

func TestUnmarshalInvalidTarget(t *testing.T) {
	err := Unmarshal(1, nil)
	require.EqualError(t, err, "target must be a non-nil pointer")

	err = Unmarshal(1, 42)
	require.EqualError(t, err, "target must be a non-nil pointer")

	var nilPointer *int
	err = Unmarshal(1, nilPointer)
	require.EqualError(t, err, "target must be a non-nil pointer")
}

func TestContainerMismatch(t *testing.T) {
	read := unmarshalFunc(func(d *Decoder) error {
		_, err := d.KeyedContainer()
		return err
	})

	err := Unmarshal([]any{1}, &read)
	require.ErrorIs(t, err, ErrTypeMismatch)

	read = unmarshalFunc(func(d *Decoder) error {
		_, err := d.SequenceContainer()
		return err
	})

	err = Unmarshal(map[string]any{}, &read)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEngineStackBalance(t *testing.T) {
	var depths []int

	read := unmarshalFunc(func(d *Decoder) error {
		depths = append(depths, d.stack.depth())

		keyed, err := d.KeyedContainer()
		if err != nil {
			return err
		}

		inner := unmarshalFunc(func(d *Decoder) error {
			depths = append(depths, d.stack.depth())
			return errors.New("boom")
		})

		// the pop must happen on the error path too
		err = keyed.Decode("inner", &inner)
		require.Error(t, err)

		depths = append(depths, d.stack.depth())
		return nil
	})

	err := Unmarshal(map[string]any{"inner": map[string]any{}}, &read)
	require.NoError(t, err)
	require.Equal(t, depths, []int{1, 2, 1})
}

func TestEnginePath(t *testing.T) {
	var paths []string

	read := unmarshalFunc(func(d *Decoder) error {
		paths = append(paths, d.Path().String())

		keyed, err := d.KeyedContainer()
		if err != nil {
			return err
		}

		items, err := keyed.NestedSequence("items")
		if err != nil {
			return err
		}

		inner := unmarshalFunc(func(d *Decoder) error {
			paths = append(paths, d.Path().String())
			return nil
		})

		return items.Decode(&inner)
	})

	err := Unmarshal(map[string]any{"items": []any{map[string]any{}}}, &read)
	require.NoError(t, err)
	require.Equal(t, paths, []string{"/", "/items/0"})
}

func TestDecoderReuse(t *testing.T) {
	dec := NewDecoder().WithDateStrategy(DateRFC3339())

	first, err := UnmarshalNewWith[time.Time](dec, "2024-03-01T10:30:00Z")
	require.NoError(t, err)

	// a failed decode must not leave state behind in the prototype
	_, err = UnmarshalNewWith[time.Time](dec, "not a date")
	require.ErrorIs(t, err, ErrCorrupted)

	second, err := UnmarshalNewWith[time.Time](dec, "2024-03-01T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, second, first)
}

func TestWithDateStrategyKeepsReceiver(t *testing.T) {
	base := NewDecoder()
	derived := base.WithDateStrategy(DateUnixSeconds())
	require.NotSame(t, base, derived)

	// the base decoder still defers date decoding, numbers do not parse
	_, err := UnmarshalNewWith[time.Time](base, 1700000000.0)
	require.ErrorIs(t, err, ErrTypeMismatch)

	value, err := UnmarshalNewWith[time.Time](derived, 1700000000.0)
	require.NoError(t, err)
	require.Equal(t, value, time.Unix(1700000000, 0).UTC())
}

func TestDecodeUnpositioned(t *testing.T) {
	var value int
	err := NewDecoder().Decode(&value)
	require.ErrorIs(t, err, ErrValueNotFound)
}

func TestSingleValueUnpositioned(t *testing.T) {
	require.True(t, NewDecoder().SingleValueContainer().DecodeNil())
}

// unmarshalFunc adapts a plain function into an [Unmarshaler] so tests
// can decode through ad hoc routines.
type unmarshalFunc func(d *Decoder) error

func (f unmarshalFunc) UnmarshalTree(d *Decoder) error {
	return f(d)
}

type student struct {
	Name string
	Age  int
}

func (s *student) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	if err := keyed.Decode("name", &s.Name); err != nil {
		return err
	}

	return keyed.Decode("age", &s.Age)
}

type profile struct {
	Name     string
	Age      int
	Birthday time.Time
	HomePage *url.URL
}

func (p *profile) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	if err := keyed.Decode("name", &p.Name); err != nil {
		return err
	}

	if err := keyed.Decode("age", &p.Age); err != nil {
		return err
	}

	if _, err := keyed.DecodeIfPresent("birthday", &p.Birthday); err != nil {
		return err
	}

	_, err = keyed.DecodeIfPresent("homePage", &p.HomePage)
	return err
}

type office struct {
	City string
	Zip  int32
}

func (o *office) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	if err := keyed.Decode("city", &o.City); err != nil {
		return err
	}

	return keyed.Decode("zip", &o.Zip)
}

type company struct {
	Name   string
	Office office
}

func (c *company) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	if err := keyed.Decode("name", &c.Name); err != nil {
		return err
	}

	return keyed.Decode("office", &c.Office)
}

type entity struct {
	ID int
}

func (e *entity) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	return keyed.Decode("id", &e.ID)
}

type employee struct {
	entity
	Name string
}

func (e *employee) UnmarshalTree(d *Decoder) error {
	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	if err := keyed.Decode("name", &e.Name); err != nil {
		return err
	}

	return e.entity.UnmarshalTree(keyed.SuperDecoder())
}
