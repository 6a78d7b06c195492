package postgres

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBigintArray renders xs as a Postgres bigint[] literal.
func FormatBigintArray(xs []int64) string {
	var b strings.Builder

	b.WriteByte('{')

	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.FormatInt(x, 10))
	}

	b.WriteByte('}')

	return b.String()
}

// BigintArrayScanner scans a Postgres bigint[] column into a []int64,
// used where database/sql has no native array support without pulling
// in pq's array helpers wholesale.
type BigintArrayScanner struct {
	Dest *[]int64
}

func (s BigintArrayScanner) Scan(src any) error {
	if src == nil {
		*s.Dest = nil
		return nil
	}

	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("postgres: cannot scan %T into bigint array", src)
	}

	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*s.Dest = []int64{}
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))

	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return fmt.Errorf("postgres: parse bigint array element %q: %w", p, err)
		}

		out = append(out, n)
	}

	*s.Dest = out

	return nil
}
