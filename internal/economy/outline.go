package economy

// Outline tallies how many times each kind has been installed.
// It only grows; prerequisite checks and the installed-kinds list read it.
type Outline struct {
	counts [KindCount]int
}

// Add records one install of kind. The read methods take a value so a
// copy from Engine.Outline can be queried directly.
func (o *Outline) Add(kind Kind) {
	o.counts[kind]++
}

// Count returns how many times kind was installed.
func (o Outline) Count(kind Kind) int {
	if !kind.Valid() {
		return 0
	}
	return o.counts[kind]
}

// Installed reports whether kind was ever installed.
func (o Outline) Installed(kind Kind) bool {
	return o.Count(kind) > 0
}

// Total returns the number of installs across all kinds.
func (o Outline) Total() int {
	total := 0
	for _, c := range o.counts {
		total += c
	}
	return total
}

// Counts returns the non-zero tallies keyed by kind.
func (o Outline) Counts() map[Kind]int {
	m := make(map[Kind]int)
	for k, c := range o.counts {
		if c > 0 {
			m[Kind(k)] = c
		}
	}
	return m
}
