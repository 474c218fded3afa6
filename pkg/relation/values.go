// pkg/relation/values.go
package relation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero of the 1900 date system used by spreadsheet
// serial dates (December 30th 1899, accounting for the Lotus leap bug).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ToString converts a cell value to its string form. Nil becomes "".
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ToFloat attempts to convert a cell value to float64.
func ToFloat(v interface{}) (float64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}

	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		// Tolerate decimal-comma input common in Brazilian exports
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		return ToFloat(string(val))
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// ToInt attempts to convert a cell value to int64, truncating any
// fractional part.
func ToInt(v interface{}) (int64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(math.Trunc(f)), nil
}

// ToTime attempts to convert a cell value to a calendar date. Numeric
// values are interpreted as spreadsheet serial dates; strings are tried
// against the formats dates commonly arrive in from workbook exports.
func ToTime(v interface{}) (time.Time, error) {
	if v == nil {
		return time.Time{}, errors.New("nil value")
	}

	switch val := v.(type) {
	case time.Time:
		return val, nil
	case float64, float32, int, int32, int64:
		serial, _ := ToFloat(val)
		if serial <= 0 {
			return time.Time{}, fmt.Errorf("invalid serial date %v", serial)
		}
		days := math.Trunc(serial)
		frac := serial - days
		return excelEpoch.AddDate(0, 0, int(days)).
			Add(time.Duration(frac * 24 * float64(time.Hour))), nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return time.Time{}, errors.New("empty string")
		}

		formats := []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"02/01/2006 15:04:05",
			"02/01/2006",
			"02/01/06",
			"2006/01/02",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, cleaned); err == nil {
				return t, nil
			}
		}

		// A numeric string may still be a serial date
		if serial, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return ToTime(serial)
		}

		return time.Time{}, fmt.Errorf("cannot parse time from '%s'", cleaned)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
	}
}

// KeyString renders a cell value as a canonical join key so that the
// same identifier groups together whether a sheet delivered it as 1,
// 1.0 or "1". Blank values produce "".
func KeyString(v interface{}) string {
	if v == nil {
		return ""
	}

	if f, err := ToFloat(v); err == nil {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strings.TrimSpace(ToString(v))
}

// IsNumeric reports whether a cell value carries a numeric Go type.
// String cells are not numeric regardless of content; a zero-padded
// code must stay a string through snapshots.
func IsNumeric(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}
