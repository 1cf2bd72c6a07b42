package tally

// Totals maps site labels to accumulated seconds for one or more days.
// Iteration order is the order in which sites were first added.
// The zero value is ready to use.
type Totals struct {
	order   []string
	seconds map[string]int64
}

// Site is one row of a Totals.
type Site struct {
	Label   string
	Seconds int64
}

// NewTotals returns an empty Totals.
func NewTotals() *Totals {
	return &Totals{seconds: make(map[string]int64)}
}

// Add increments the seconds recorded for site. Negative values are ignored.
func (t *Totals) Add(site string, seconds int64) {
	if seconds < 0 {
		return
	}
	if t.seconds == nil {
		t.seconds = make(map[string]int64)
	}
	if _, ok := t.seconds[site]; !ok {
		t.order = append(t.order, site)
	}
	t.seconds[site] += seconds
}

// Merge adds every site of other into t, keeping t's order for existing
// sites and appending new ones in other's order.
func (t *Totals) Merge(other *Totals) {
	if other == nil {
		return
	}
	for _, s := range other.Sites() {
		t.Add(s.Label, s.Seconds)
	}
}

// Seconds returns the total for site and whether the site was ever added.
func (t *Totals) Seconds(site string) (int64, bool) {
	if t == nil || t.seconds == nil {
		return 0, false
	}
	v, ok := t.seconds[site]
	return v, ok
}

// Sites returns the rows in first-insertion order.
func (t *Totals) Sites() []Site {
	if t == nil {
		return nil
	}
	out := make([]Site, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, Site{Label: label, Seconds: t.seconds[label]})
	}
	return out
}

// Labels returns the site labels in first-insertion order.
func (t *Totals) Labels() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct sites.
func (t *Totals) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Sum returns the total seconds across all sites.
func (t *Totals) Sum() int64 {
	var sum int64
	for _, s := range t.Sites() {
		sum += s.Seconds
	}
	return sum
}

// Map returns a plain map copy, losing order.
func (t *Totals) Map() map[string]int64 {
	out := make(map[string]int64, t.Len())
	for _, s := range t.Sites() {
		out[s.Label] = s.Seconds
	}
	return out
}

// Clone returns an independent copy.
func (t *Totals) Clone() *Totals {
	c := NewTotals()
	c.Merge(t)
	return c
}
