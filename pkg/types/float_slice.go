package types

type Float64Slice []float64

func (s *Float64Slice) Push(v float64) {
	*s = append(*s, v)
}

func (s Float64Slice) Length() int {
	return len(s)
}

func (s Float64Slice) Last() float64 {
	if len(s) == 0 {
		return 0
	}

	return s[len(s)-1]
}

// Index returns the value i steps back from the last one
func (s Float64Slice) Index(i int) float64 {
	if i < 0 || len(s)-1-i < 0 {
		return 0.0
	}

	return s[len(s)-1-i]
}

func (s Float64Slice) Sum() (sum float64) {
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s Float64Slice) Mean() (mean float64) {
	if len(s) == 0 {
		return 0
	}

	return s.Sum() / float64(len(s))
}

func (s Float64Slice) Tail(size int) Float64Slice {
	length := len(s)
	if length <= size {
		win := make(Float64Slice, length)
		copy(win, s)
		return win
	}

	win := make(Float64Slice, size)
	copy(win, s[length-size:])
	return win
}

// Sub returns the element-wise difference s - b, the length follows the shorter one
func (s Float64Slice) Sub(b Float64Slice) Float64Slice {
	n := len(s)
	if len(b) < n {
		n = len(b)
	}

	values := make(Float64Slice, n)
	for i := 0; i < n; i++ {
		values[i] = s[i] - b[i]
	}
	return values
}
