package layout

import (
	"strconv"
	"strings"
)

// ParseTranslate extracts the offset from an inline transform value such as
// "translate3d(10px, 4px, 0)" or "translate(10px, 4px)". Values it cannot
// read return ok == false; "" and "none" are the zero offset.
func ParseTranslate(value string) (Transform, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return Transform{}, true
	}

	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return Transform{}, false
	}

	fn := value[:open]
	args := strings.Split(value[open+1:len(value)-1], ",")

	switch fn {
	case "translate3d":
		if len(args) != 3 {
			return Transform{}, false
		}
	case "translate":
		if len(args) != 1 && len(args) != 2 {
			return Transform{}, false
		}
	default:
		return Transform{}, false
	}

	x, ok := parseLength(args[0])
	if !ok {
		return Transform{}, false
	}
	var y float64
	if len(args) > 1 {
		if y, ok = parseLength(args[1]); !ok {
			return Transform{}, false
		}
	}
	return Transform{X: x, Y: y}, true
}

// parseLength reads a px length. A bare 0 is accepted as CSS allows.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
