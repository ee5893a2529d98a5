package series

// Accumulator is a string-keyed sum that remembers first-insertion order
type Accumulator struct {
	keys   []string
	values map[string]float64
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{values: make(map[string]float64)}
}

// Add adds delta to key, registering key on first use
func (a *Accumulator) Add(key string, delta float64) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] += delta
}

// Set overwrites the value for key, registering key on first use
func (a *Accumulator) Set(key string, value float64) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key
func (a *Accumulator) Get(key string) (float64, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns keys in first-insertion order
func (a *Accumulator) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of keys
func (a *Accumulator) Len() int {
	return len(a.keys)
}

// Map returns a copy of the accumulated values
func (a *Accumulator) Map() map[string]float64 {
	out := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Points returns the entries as points in first-insertion order
func (a *Accumulator) Points() []Point {
	points := make([]Point, len(a.keys))
	for i, k := range a.keys {
		points[i] = Point{Label: k, Value: a.values[k]}
	}
	return points
}
