package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UserID is the canonical representation of a user identity. Every owner
// comparison happens between two UserID values, never between raw claim or
// document fields.
type UserID int64

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseUserID converts the forms a user id takes at the system's edges (JWT
// numeric claims decode as float64, Mongo stores int32/int64, legacy documents
// may hold a decimal string) into a UserID.
func ParseUserID(v any) (UserID, error) {
	switch x := v.(type) {
	case UserID:
		return x, nil
	case int:
		return UserID(x), nil
	case int32:
		return UserID(x), nil
	case int64:
		return UserID(x), nil
	case float64:
		if x != math.Trunc(x) || x >= 1<<63 || x < math.MinInt64 {
			return 0, fmt.Errorf("user id %v is not an integer", x)
		}
		return UserID(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("user id %q: %w", x.String(), err)
		}
		return UserID(n), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("user id %q: %w", x, err)
		}
		return UserID(n), nil
	default:
		return 0, fmt.Errorf("unsupported user id type %T", v)
	}
}

// CheckOwner returns ErrForbidden unless actor is the resource owner.
func CheckOwner(owner, actor UserID) error {
	if owner != actor {
		return ErrForbidden
	}
	return nil
}
