// ABOUTME: Record validation and coercion shared by every proposal section
// ABOUTME: Numeric and enum coercion rules plus the struct-tag invariant gate
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/harperreed/propkit/models"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// Rejection describes why a raw value could not become a record. The reason
// is meant for diagnostics and is never persisted.
type Rejection struct {
	Schema string
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("invalid %s record: %s", r.Schema, r.Reason)
}

func reject(schema, format string, args ...interface{}) error {
	return &Rejection{Schema: schema, Reason: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err came from a failed record check.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

var structs = validator.New()

// check runs the struct tag rules on an already coerced record.
func check(schema string, rec interface{}) error {
	if err := structs.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return reject(schema, "field %s failed %s", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return reject(schema, "%v", err)
	}
	return nil
}

// ParseNumber parses s strictly. Blank, malformed and non-finite input fail.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number parses s, coercing anything that is not a finite number to 0.
func Number(s string) float64 {
	f, _ := ParseNumber(s)
	return f
}

// Finite returns f, or 0 when f is NaN or infinite.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceNumber converts a decoded JSON value to a finite number, falling back to 0.
func CoerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return Finite(n)
	case int:
		return float64(n)
	case string:
		return Number(n)
	}
	return 0
}

// Score converts v to a risk score rounded into [1,5].
func Score(v interface{}) int {
	var f float64
	switch n := v.(type) {
	case string:
		parsed, ok := ParseNumber(n)
		if !ok {
			return models.ScoreMin
		}
		f = parsed
	default:
		f = CoerceNumber(v)
	}
	return int(clamp(math.Round(f), models.ScoreMin, models.ScoreMax))
}

// MaxLevel bounds tree depth so huge inputs stay representable.
const MaxLevel = 100

// Level converts v to a tree depth in [0,MaxLevel].
func Level(v interface{}) int {
	var f float64
	if s, ok := v.(string); ok {
		f = Number(s)
	} else {
		f = CoerceNumber(v)
	}
	return int(clamp(math.Trunc(f), 0, MaxLevel))
}

// clamp bounds f before any int conversion. NaN maps to lo.
func clamp(f float64, lo, hi int) float64 {
	if math.IsNaN(f) {
		return float64(lo)
	}
	return math.Max(float64(lo), math.Min(float64(hi), f))
}
