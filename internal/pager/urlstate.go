package pager

import (
	"net/url"
	"strconv"
	"strings"
)

// Unprefixed parameter names, used by the default instance. A non-empty
// namespace prefixes them with the first letter upper-cased:
// "filesPage", "filesPageSize", "filesAfter".
const (
	paramPage     = "page"
	paramPageSize = "pageSize"
	paramAfter    = "after"
)

// ParamNames returns the three query-string keys owned by a namespace.
// Callers that overlay individual parameters onto a query string (CLI
// flags, tests) use it to address the right keys.
func ParamNames(namespace string) (pageKey, sizeKey, afterKey string) {
	if namespace == "" {
		return paramPage, paramPageSize, paramAfter
	}
	return namespace + capitalize(paramPage),
		namespace + capitalize(paramPageSize),
		namespace + capitalize(paramAfter)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FromValues reconstructs an instance from query-string parameters,
// binding it to values so subsequent navigation writes back. Absent or
// malformed parameters (non-numeric, zero, negative) fall back to
// defaults, never an error.
//
// Only the {page, pageSize, cursor} triple is recoverable this way. The
// history stack is memory-only: an instance restored at page > 1 can
// still render its page (the cursor is in the URL) but a PrevPage on it
// falls back to first-page semantics because the intermediate cursors
// are gone.
func FromValues(namespace string, values url.Values, opts Options) *Instance {
	inst := New(namespace, opts)
	pageKey, sizeKey, afterKey := ParamNames(namespace)

	if n, ok := parsePositiveInt(values.Get(sizeKey)); ok {
		if opts.MaxPageSize > 0 && n > opts.MaxPageSize {
			n = opts.MaxPageSize
		}
		inst.pageSize = n
	}
	if n, ok := parsePositiveInt(values.Get(pageKey)); ok {
		inst.page = n
	}
	if inst.page > 1 {
		inst.cursor = values.Get(afterKey)
	}
	inst.values = values
	return inst
}

// Bind attaches a query-string store to the instance and writes the
// current state into it. Subsequent navigation operations keep it in
// sync.
func (i *Instance) Bind(values url.Values) {
	i.values = values
	i.syncValues()
}

// Values returns the bound query-string store, or nil if unbound.
func (i *Instance) Values() url.Values {
	return i.values
}

// QueryString encodes the instance's current state as a shareable query
// string fragment (only this instance's keys).
func (i *Instance) QueryString() string {
	values := url.Values{}
	i.writeValues(values)
	return values.Encode()
}

// syncValues reflects the current state into the bound store, if any.
func (i *Instance) syncValues() {
	if i.values == nil {
		return
	}
	i.writeValues(i.values)
}

// writeValues writes the serializable triple into values, touching only
// the keys owned by this instance's namespace. Default values are
// omitted so bookmarked URLs stay minimal: page 1 and the default page
// size delete their keys, and an absent cursor deletes the after key.
func (i *Instance) writeValues(values url.Values) {
	pageKey, sizeKey, afterKey := ParamNames(i.namespace)

	if i.page > 1 {
		values.Set(pageKey, strconv.Itoa(i.page))
	} else {
		values.Del(pageKey)
	}

	if i.pageSize != i.defaultPageSize {
		values.Set(sizeKey, strconv.Itoa(i.pageSize))
	} else {
		values.Del(sizeKey)
	}

	if i.cursor != "" {
		values.Set(afterKey, i.cursor)
	} else {
		values.Del(afterKey)
	}
}

// parsePositiveInt parses s as a strictly positive integer. Malformed
// and non-positive values report ok=false so callers fall back to
// defaults.
func parsePositiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
