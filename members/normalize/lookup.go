package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

// FoldKey reduces a column name to its case and separator insensitive form,
// so "Client_ID", "clientId" and "CLIENT-ID" compare equal.
func FoldKey(name string) string {
	var b strings.Builder

	b.Grow(len(name))

	for _, r := range strings.ToLower(name) {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Index maps folded column names of one raw record onto its actual keys.
type Index map[string]string

func NewIndex(raw domain.RemoteMemberRecord) Index {
	idx := make(Index, len(raw))

	for k := range raw {
		folded := FoldKey(k)
		// keep folded collisions deterministic
		if prev, ok := idx[folded]; ok && prev < k {
			continue
		}

		idx[folded] = k
	}

	return idx
}

// Lookup returns the value of the first name present in raw. Exact keys are
// tried before folded ones.
func Lookup(raw domain.RemoteMemberRecord, names ...string) (interface{}, bool) {
	return lookup(raw, nil, names...)
}

func lookup(raw domain.RemoteMemberRecord, idx Index, names ...string) (interface{}, bool) {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			return v, true
		}
	}

	if idx == nil {
		idx = NewIndex(raw)
	}

	for _, name := range names {
		if k, ok := idx[FoldKey(name)]; ok {
			return raw[k], true
		}
	}

	return nil, false
}

// Stringify renders a raw field value the way it is cached and compared.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
