package rules

import "strings"

// WithPrefix returns the entries whose identifier starts with prefix.
func (t Table) WithPrefix(prefix string) Table {
	out := make(Table)
	for id, e := range t {
		if strings.HasPrefix(id, prefix) {
			out[id] = e
		}
	}
	return out
}

// AtLeast returns the entries at or above severity min.
func (t Table) AtLeast(min Severity) Table {
	out := make(Table)
	for id, e := range t {
		if e.Severity >= min {
			out[id] = e
		}
	}
	return out
}

// Enabled returns the entries that are not off.
func (t Table) Enabled() Table {
	return t.AtLeast(SeverityWarn)
}

// ByPlugin returns the entries that belong to plugin ("" for core rules).
func (t Table) ByPlugin(plugin string) Table {
	out := make(Table)
	for id, e := range t {
		if PluginOf(id) == plugin {
			out[id] = e
		}
	}
	return out
}

// Counts returns the number of entries per severity.
func (t Table) Counts() map[Severity]int {
	counts := map[Severity]int{
		SeverityOff:   0,
		SeverityWarn:  0,
		SeverityError: 0,
	}
	for _, e := range t {
		counts[e.Severity]++
	}
	return counts
}
