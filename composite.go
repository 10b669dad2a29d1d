package untree

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// unboxReflect handles targets the typed fast paths miss: named
// scalar types, pointers, slices, arrays and string keyed maps. The
// composite fallbacks pull their elements through the regular containers,
// so paths stay correct. Plain structs are not walked, a struct decodes
// only through its own [Unmarshaler].
func (d *Decoder) unboxReflect(node any, target any) error {
	elem := reflect.ValueOf(target).Elem()

	switch elem.Kind() {
	case reflect.Bool:
		value, err := d.asBool(node)
		if err != nil {
			return err
		}

		elem.SetBool(value)
		return nil

	case reflect.String:
		value, err := d.asText(node)
		if err != nil {
			return err
		}

		elem.SetString(value)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := d.asInt(node)
		if err != nil {
			return err
		}

		if elem.OverflowInt(value) {
			return d.corrupted(fmt.Sprintf("number %d does not fit into %s", value, elem.Type()), strconv.ErrRange)
		}

		elem.SetInt(value)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err := d.asUint(node)
		if err != nil {
			return err
		}

		if elem.OverflowUint(value) {
			return d.corrupted(fmt.Sprintf("number %d does not fit into %s", value, elem.Type()), strconv.ErrRange)
		}

		elem.SetUint(value)
		return nil

	case reflect.Float32, reflect.Float64:
		value, err := d.asFloat(node)
		if err != nil {
			return err
		}

		if elem.OverflowFloat(value) {
			return d.corrupted(fmt.Sprintf("number %v does not fit into %s", value, elem.Type()), strconv.ErrRange)
		}

		elem.SetFloat(value)
		return nil

	case reflect.Pointer:
		return d.unboxPointer(node, elem)

	case reflect.Slice:
		return d.unboxSlice(node, elem)

	case reflect.Array:
		return d.unboxArray(node, elem)

	case reflect.Map:
		return d.unboxMap(node, elem)

	default:
		return NotSupportedError{Type: elem.Type()}
	}
}

func (d *Decoder) unboxPointer(node any, target reflect.Value) error {
	// pointee is a pointer to a fresh instance of the pointed-to type
	pointee := reflect.New(target.Type().Elem())
	if err := d.unbox(node, pointee.Interface()); err != nil {
		return err
	}

	target.Set(pointee)
	return nil
}

func (d *Decoder) unboxSlice(node any, target reflect.Value) error {
	d.stack.push(node)
	defer d.stack.pop()

	seq, err := d.SequenceContainer()
	if err != nil {
		return err
	}

	elementType := target.Type().Elem()
	slice := reflect.MakeSlice(target.Type(), 0, seq.Len())

	for !seq.AtEnd() {
		element := reflect.New(elementType)
		if err := seq.Decode(element.Interface()); err != nil {
			return err
		}

		slice = reflect.Append(slice, element.Elem())
	}

	target.Set(slice)
	return nil
}

func (d *Decoder) unboxArray(node any, target reflect.Value) error {
	d.stack.push(node)
	defer d.stack.pop()

	seq, err := d.SequenceContainer()
	if err != nil {
		return err
	}

	elementType := target.Type().Elem()

	// a short sequence leaves the tail zeroed, extra elements are ignored
	for idx := 0; idx < target.Len() && !seq.AtEnd(); idx++ {
		element := reflect.New(elementType)
		if err := seq.Decode(element.Interface()); err != nil {
			return err
		}

		target.Index(idx).Set(element.Elem())
	}

	return nil
}

func (d *Decoder) unboxMap(node any, target reflect.Value) error {
	if target.Type().Key().Kind() != reflect.String {
		return NotSupportedError{Type: target.Type()}
	}

	d.stack.push(node)
	defer d.stack.pop()

	keyed, err := d.KeyedContainer()
	if err != nil {
		return err
	}

	keyType := target.Type().Key()
	valueType := target.Type().Elem()

	mapValue := reflect.MakeMap(target.Type())

	for _, key := range keyed.Keys() {
		value := reflect.New(valueType)
		if err := keyed.Decode(key, value.Interface()); err != nil {
			return err
		}

		mapValue.SetMapIndex(reflect.ValueOf(key).Convert(keyType), value.Elem())
	}

	target.Set(mapValue)
	return nil
}

func (d *Decoder) unboxTextUnmarshaler(node any, target encoding.TextUnmarshaler) error {
	text, err := d.asText(node)
	if err != nil {
		return err
	}

	if err := target.UnmarshalText([]byte(text)); err != nil {
		return d.corrupted(fmt.Sprintf("unmarshal text %q", text), err)
	}

	return nil
}
