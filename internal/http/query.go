package http

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"clubdir/internal/core"
)

// parseFilter builds the club filter from the sidebar's query parameters.
// Multi-valued params (state, city, prestige, membership) repeat; range
// bounds are dollar amounts. Unparseable values are ignored rather than
// rejected, matching how the sidebar degrades when a user clears a field.
func parseFilter(values url.Values) (*core.Filter, core.SortKey, bool) {
	f := &core.Filter{
		Search:          strings.TrimSpace(values.Get("q")),
		States:          cleanMulti(values["state"]),
		Cities:          cleanMulti(values["city"]),
		PrestigeLevels:  cleanMulti(values["prestige"]),
		MembershipTypes: cleanMulti(values["membership"]),
	}
	f.DuesMin = parseBound(values.Get("dues_min"))
	f.DuesMax = parseBound(values.Get("dues_max"))
	f.InitiationMin = parseBound(values.Get("init_min"))
	f.InitiationMax = parseBound(values.Get("init_max"))

	key := core.ParseSortKey(values.Get("sort"))
	descending := strings.EqualFold(values.Get("order"), "desc")
	return f, key, descending
}

func cleanMulti(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBound(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	cents, err := core.ParseDollarsToCents(s)
	if err != nil {
		return nil
	}
	return &cents
}

// filterCacheKey canonicalizes a parsed filter into a stable cache key so
// that equivalent queries share a results cache entry.
func filterCacheKey(f *core.Filter, key core.SortKey, descending bool) string {
	var b strings.Builder
	b.WriteString("q=" + strings.ToLower(f.Search))
	writeSet := func(name string, vals []string) {
		lowered := make([]string, len(vals))
		for i, v := range vals {
			lowered[i] = strings.ToLower(strings.TrimSpace(v))
		}
		sort.Strings(lowered)
		b.WriteString("|" + name + "=" + strings.Join(lowered, ","))
	}
	writeSet("st", f.States)
	writeSet("ci", f.Cities)
	writeSet("pr", f.PrestigeLevels)
	writeSet("me", f.MembershipTypes)
	writeBound := func(name string, v *int64) {
		b.WriteString("|" + name + "=")
		if v != nil {
			b.WriteString(strconv.FormatInt(*v, 10))
		}
	}
	writeBound("dmin", f.DuesMin)
	writeBound("dmax", f.DuesMax)
	writeBound("imin", f.InitiationMin)
	writeBound("imax", f.InitiationMax)
	b.WriteString("|sort=" + string(key))
	if descending {
		b.WriteString("|desc")
	}
	return b.String()
}
