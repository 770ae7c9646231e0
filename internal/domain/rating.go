package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Rating is an optional score. Present is false when the source document carried
// no rating at all, which is different from a rating of zero.
type Rating struct {
	Value   float64
	Present bool
}

// RatingOf returns a present rating.
func RatingOf(v float64) Rating {
	return Rating{Value: v, Present: true}
}

// MarshalBSONValue stores absent ratings as null.
func (r Rating) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.Present {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(r.Value)
}

// UnmarshalBSONValue accepts numeric and numeric-string ratings.
func (r *Rating) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*r = Rating{}
	case bson.TypeDouble:
		*r = RatingOf(raw.Double())
	case bson.TypeInt32:
		*r = RatingOf(float64(raw.Int32()))
	case bson.TypeInt64:
		*r = RatingOf(float64(raw.Int64()))
	case bson.TypeDecimal128:
		return r.parse(raw.Decimal128().String())
	case bson.TypeString:
		return r.parse(raw.StringValue())
	default:
		return fmt.Errorf("rating: unsupported bson type %s", t)
	}
	return nil
}

// MarshalJSON renders absent ratings as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return r.parse(s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = RatingOf(v)
	return nil
}

func (r *Rating) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*r = Rating{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("rating: invalid value %q", s)
	}
	*r = RatingOf(v)
	return nil
}
