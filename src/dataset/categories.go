package dataset

// Categories lists the distinct values of the category column in first-seen order.
func Categories(ds *Dataset) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range ds.tracks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
