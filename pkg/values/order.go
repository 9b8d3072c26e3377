package values

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/bintree/pkg/errors"
)

// Order is the order values are sorted into before the tree is built.
type Order string

const (
	// OrderNone keeps the values as given.
	OrderNone Order = "none"
	// OrderAuto sorts numerically when every value is a number and
	// lexically otherwise.
	OrderAuto Order = "auto"
	// OrderNumeric sorts by numeric value. Every value must be a number.
	OrderNumeric Order = "numeric"
	// OrderLexical sorts by byte-wise string comparison.
	OrderLexical Order = "lexical"
)

// ParseOrder parses an order name. The empty string selects OrderAuto.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderAuto, nil
	case OrderNone, OrderAuto, OrderNumeric, OrderLexical:
		return o, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidOrder, "invalid order %q (want none, auto, numeric or lexical)", s)
	}
}

// Numeric reports whether every value parses as a number.
func Numeric(vals []string) bool {
	for _, v := range vals {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// Resolve returns the concrete order used for vals: OrderAuto becomes
// OrderNumeric or OrderLexical.
func Resolve(vals []string, o Order) Order {
	if o != OrderAuto {
		return o
	}
	if len(vals) > 0 && Numeric(vals) {
		return OrderNumeric
	}
	return OrderLexical
}

// Sort returns a sorted copy of vals. Values that compare equal keep their
// input order.
func Sort(vals []string, o Order) ([]string, error) {
	out := slices.Clone(vals)

	switch Resolve(vals, o) {
	case OrderNone:
		return out, nil
	case OrderLexical:
		slices.SortStableFunc(out, strings.Compare)
		return out, nil
	case OrderNumeric:
		nums := make(map[string]float64, len(out))
		for i, v := range out {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidValue, "value #%d (%q) is not a number", i+1, v)
			}
			nums[v] = f
		}
		slices.SortStableFunc(out, func(a, b string) int {
			return cmp.Compare(nums[a], nums[b])
		})
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidOrder, "invalid order %q", o)
	}
}

// Unique removes adjacent duplicates. Applied after Sort it removes every
// duplicate value.
func Unique(vals []string) []string {
	return slices.Compact(slices.Clone(vals))
}
