package handler

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/order-import/internal/domain/order"
)

// FieldBody is the field key for problems with the request body as a whole.
const FieldBody = "body"

const (
	reasonRequired = "this field is required"
	reasonString   = "must be a string"
	reasonList     = "must be a list"
	reasonObject   = "must be an object"
	reasonInteger  = "must be an integer"
)

// maxIntExponent bounds the decimal exponent of an accepted integer.
const maxIntExponent = 20

// decodeImportRequest decodes an import payload. Type and presence problems
// are returned together as a *order.ValidationError; unparsable JSON yields
// a single body error. Unknown fields are ignored.
func decodeImportRequest(data []byte) (order.ImportRequest, error) {
	var (
		req                 order.ImportRequest
		hasNumber, hasItems bool
	)
	verr := &order.ValidationError{}

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		verr.Add(FieldBody, "must be a JSON object")
		return req, verr
	}

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case order.FieldOrderNumber:
			hasNumber = true
			if d.Next() != jx.String {
				verr.Add(order.FieldOrderNumber, reasonString)
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			req.OrderNumber = s
			return nil
		case order.FieldProductsData:
			hasItems = true
			if d.Next() != jx.Array {
				verr.Add(order.FieldProductsData, reasonList)
				return d.Skip()
			}
			req.Items = []order.LineRequest{}
			return d.Arr(func(d *jx.Decoder) error {
				line, err := decodeLine(d, len(req.Items), verr)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, line)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err == nil {
		// Only whitespace may follow the object.
		if skipErr := d.Skip(); !errors.Is(skipErr, io.EOF) {
			err = errors.New("trailing data after object")
		}
	}
	if err != nil {
		malformed := &order.ValidationError{}
		malformed.Add(FieldBody, "malformed JSON")
		return order.ImportRequest{}, malformed
	}

	if !hasNumber {
		verr.Add(order.FieldOrderNumber, reasonRequired)
	}
	if !hasItems {
		verr.Add(order.FieldProductsData, reasonRequired)
	}
	if err := verr.Err(); err != nil {
		return order.ImportRequest{}, err
	}
	return req, nil
}

// decodeLine decodes products_data[idx].
func decodeLine(d *jx.Decoder, idx int, verr *order.ValidationError) (order.LineRequest, error) {
	var (
		line               order.LineRequest
		hasProduct, hasQty bool
	)
	if d.Next() != jx.Object {
		verr.Add(order.ItemKey(idx), reasonObject)
		return line, d.Skip()
	}

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var dst *int64
		switch string(key) {
		case order.FieldProductID:
			hasProduct, dst = true, &line.ProductID
		case order.FieldQuantity:
			hasQty, dst = true, &line.Quantity
		default:
			return d.Skip()
		}
		v, ok, err := decodeInt(d)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add(order.ItemField(idx, string(key)), reasonInteger)
			return nil
		}
		*dst = v
		return nil
	})
	if err != nil {
		return line, err
	}

	if !hasProduct {
		verr.Add(order.ItemField(idx, order.FieldProductID), reasonRequired)
	}
	if !hasQty {
		verr.Add(order.ItemField(idx, order.FieldQuantity), reasonRequired)
	}
	return line, nil
}

// decodeInt reads an integral JSON number. Integral values written with a
// fraction or exponent, such as 2.0 or 1e3, are accepted. ok is false, with
// the value consumed, for any other JSON value or an integer outside int64.
func decodeInt(d *jx.Decoder) (v int64, ok bool, err error) {
	if d.Next() != jx.Number {
		return 0, false, d.Skip()
	}
	n, err := d.Num()
	if err != nil {
		return 0, false, err
	}
	if n.IsInt() {
		if v, err := n.Int64(); err == nil {
			return v, true, nil
		}
	}

	dec, err := decimal.NewFromString(n.String())
	if err != nil {
		return 0, false, nil
	}
	if dec.IsZero() {
		return 0, true, nil
	}
	// Larger exponents cannot fit int64; smaller ones are not worth the
	// big.Int work to discover a fraction.
	if exp := dec.Exponent(); exp > maxIntExponent || exp < -maxIntExponent {
		return 0, false, nil
	}
	if !dec.IsInteger() {
		return 0, false, nil
	}
	bi := dec.BigInt()
	if !bi.IsInt64() {
		return 0, false, nil
	}
	return bi.Int64(), true, nil
}
