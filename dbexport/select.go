package dbexport

// SelectObjects decides what to export. Without requested names it returns
// all tables, followed by the views when includeViews is set. Otherwise it
// keeps the requested names that exist, in request order and without
// duplicates, and reports the rest as missing.
func SelectObjects(requested, tables, views []string, includeViews bool) (selected, missing []string) {
	available := append([]string{}, tables...)
	if includeViews {
		available = append(available, views...)
	}
	if len(requested) == 0 {
		return available, nil
	}
	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if seen[name] {
			continue
		}
		seen[name] = true
		if known[name] {
			selected = append(selected, name)
		} else {
			missing = append(missing, name)
		}
	}
	return selected, missing
}
