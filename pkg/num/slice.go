package num

type Slice []Num

// Defaults to ascending sort
func (s Slice) Len() int           { return len(s) }
func (s Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s Slice) Less(i, j int) bool { return s[i].Compare(s[j]) < 0 }

type Descending []Num

func (s Descending) Len() int           { return len(s) }
func (s Descending) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s Descending) Less(i, j int) bool { return s[i].Compare(s[j]) > 0 }

// Float64s converts the slice for plotting or statistics libraries.
func (s Slice) Float64s() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Float64()
	}

	return out
}
