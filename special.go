package untree

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"net/url"
)

func (d *Decoder) unboxURL(node any, target *url.URL) error {
	if isNil(node) {
		return d.valueNotFound("url.URL")
	}

	switch value := node.(type) {
	case url.URL:
		*target = value
		return nil
	case *url.URL:
		*target = *value
		return nil
	}

	text, err := d.asText(node)
	if err != nil {
		return err
	}

	if text == "" {
		// empty text denotes no locator at all, not a malformed one
		return d.valueNotFound("url.URL")
	}

	value, err := url.Parse(text)
	if err != nil {
		return d.corrupted(fmt.Sprintf("parse url %q", text), err)
	}

	*target = *value
	return nil
}

// unboxDecimal converts numeric nodes into a decimal. A json.Number node
// converts exactly; a float node carries float64 precision, so the
// decimal is the closest representation of that float, not of whatever
// literal the tree was built from.
func (d *Decoder) unboxDecimal(node any, target *decimal.Decimal) error {
	if isNil(node) {
		return d.valueNotFound("decimal.Decimal")
	}

	switch value := node.(type) {
	case decimal.Decimal:
		*target = value
		return nil
	case json.Number:
		parsed, err := decimal.NewFromString(string(value))
		if err != nil {
			return d.corrupted(fmt.Sprintf("parse number %q", string(value)), err)
		}

		*target = parsed
		return nil
	}

	value, err := d.asFloat(node)
	if err != nil {
		return err
	}

	*target = decimal.NewFromFloat(value)
	return nil
}

func (d *Decoder) unboxUUID(node any, target *uuid.UUID) error {
	if isNil(node) {
		return d.valueNotFound("uuid.UUID")
	}

	if value, ok := node.(uuid.UUID); ok {
		*target = value
		return nil
	}

	text, err := d.asText(node)
	if err != nil {
		return err
	}

	value, err := uuid.Parse(text)
	if err != nil {
		return d.corrupted(fmt.Sprintf("parse uuid %q", text), err)
	}

	*target = value
	return nil
}

// unboxBytes decodes raw bytes: a []byte node is cloned, a text node is
// base64 decoded, and a sequence node decodes element wise.
func (d *Decoder) unboxBytes(node any, target *[]byte) error {
	if isNil(node) {
		return d.valueNotFound("[]byte")
	}

	switch value := node.(type) {
	case []byte:
		*target = bytes.Clone(value)
		return nil
	case string:
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return d.corrupted(fmt.Sprintf("decode base64 %q", value), err)
		}

		*target = decoded
		return nil
	}

	return d.unboxReflect(node, target)
}
