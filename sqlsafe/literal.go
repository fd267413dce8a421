package sqlsafe

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateTimeLayout is the inline form of time.Time values (ISO 8601, millisecond precision).
const DateTimeLayout = "2006-01-02T15:04:05.000"

// Indirect dereferences pointers. It reports false when v is nil or a nil pointer.
func Indirect(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// FormatLiteral renders v as an inline SQL literal. Nil renders as null.
func FormatLiteral(v interface{}) (string, error) {
	return formatLiteral(v, EscapeLiteral, Quote)
}

// FormatDynamicLiteral renders v for a literal nested in dynamic SQL. Unwrapping
// one string level gives the FormatLiteral form.
func FormatDynamicLiteral(v interface{}) (string, error) {
	return formatLiteral(v, EscapeDynamicLiteral, DynamicQuote)
}

func formatLiteral(v interface{}, escape func(string) string, q string) (string, error) {
	v, ok := Indirect(v)
	if !ok {
		return "null", nil
	}
	switch t := v.(type) {
	case string:
		return q + escape(t) + q, nil
	case bool:
		if t {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case decimal.Decimal:
		return t.String(), nil
	case uuid.UUID:
		return q + t.String() + q, nil
	case time.Time:
		return q + t.Format(DateTimeLayout) + q, nil
	}
	return "", fmt.Errorf("%w: cannot render %T as a SQL literal", ErrInvalidArgument, v)
}
