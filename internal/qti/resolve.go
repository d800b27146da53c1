package qti

// identResolver attempts to produce the ordered identifier list for a set
// of response labels. Resolvers are tried in sequence; the first one that
// reports ok wins.
type identResolver func(labels []responseLabel) ([]string, bool)

// metadataResolver uses the authoritative list from item metadata, but
// only when its length matches the choice count.
func metadataResolver(ids []string) identResolver {
	return func(labels []responseLabel) ([]string, bool) {
		if len(ids) == 0 || len(ids) != len(labels) {
			return nil, false
		}
		return ids, true
	}
}

// attrResolver reads one candidate identifier attribute off each label.
func attrResolver(get func(responseLabel) string) identResolver {
	return func(labels []responseLabel) ([]string, bool) {
		out := make([]string, len(labels))
		any := false
		for i, l := range labels {
			out[i] = get(l)
			if out[i] != "" {
				any = true
			}
		}
		if !any {
			return nil, false
		}
		return out, true
	}
}

// resolveIdents runs the fallback chain: metadata-provided identifiers
// first (schemas reuse ident attributes across items, so the metadata list
// is more trustworthy), then each label's ident attribute, then id. A
// fully unresolvable set yields blanks, which can never match a condition
// value.
func resolveIdents(labels []responseLabel, metaIDs []string) []string {
	chain := []identResolver{
		metadataResolver(metaIDs),
		attrResolver(func(l responseLabel) string { return l.Ident }),
		attrResolver(func(l responseLabel) string { return l.ID }),
	}
	for _, resolve := range chain {
		if ids, ok := resolve(labels); ok {
			return ids
		}
	}
	return make([]string, len(labels))
}
