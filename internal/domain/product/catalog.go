package product

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// DecodeCatalog reads a JSON array of {"id", "name", "price"} entries. Prices
// may be JSON strings or numbers and are parsed exactly.
func DecodeCatalog(r io.Reader) ([]Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}

	var products []Product
	seen := make(map[int64]struct{})
	d := jx.DecodeBytes(data)
	err = d.Arr(func(d *jx.Decoder) error {
		idx := len(products)
		p, err := decodeProduct(d)
		if err != nil {
			return errors.Wrapf(err, "entry %d", idx)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Errorf("entry %d: duplicate id %d", idx, p.ID)
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (Product, error) {
	var p Product
	var hasPrice bool
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = v
		case "name":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			p.Name = v
		case "price":
			price, err := decodePrice(d)
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price, hasPrice = price, true
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}

	switch {
	case p.ID <= 0:
		return Product{}, errors.New("id must be positive")
	case p.Name == "":
		return Product{}, errors.New("name is required")
	case !hasPrice:
		return Product{}, errors.New("price is required")
	case p.Price.IsNegative():
		return Product{}, errors.Errorf("price %s is negative", p.Price)
	}
	return p, nil
}

func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	var raw string
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		raw = s
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		raw = n.String()
	default:
		return decimal.Zero, errors.New("must be a string or number")
	}
	return decimal.NewFromString(raw)
}
