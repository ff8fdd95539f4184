package forecast

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Point is one forecast row.
type Point struct {
	DS        time.Time `json:"ds"`
	Yhat      float64   `json:"yhat"`
	YhatLower float64   `json:"yhat_lower"`
	YhatUpper float64   `json:"yhat_upper"`
}

// Frame is an ordered sequence of forecast rows. It covers the history the
// model was fitted on and, optionally, a future horizon beyond it.
type Frame struct {
	Timestamps []time.Time
	Yhat       []float64
	YhatLower  []float64
	YhatUpper  []float64
}

// NewFrame allocates a frame with capacity for n rows.
func NewFrame(n int) *Frame {
	return &Frame{
		Timestamps: make([]time.Time, 0, n),
		Yhat:       make([]float64, 0, n),
		YhatLower:  make([]float64, 0, n),
		YhatUpper:  make([]float64, 0, n),
	}
}

// Append adds one row to the frame.
func (f *Frame) Append(ts time.Time, yhat, lower, upper float64) {
	f.Timestamps = append(f.Timestamps, ts)
	f.Yhat = append(f.Yhat, yhat)
	f.YhatLower = append(f.YhatLower, lower)
	f.YhatUpper = append(f.YhatUpper, upper)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Timestamps)
}

// At returns the point estimate at the given timestamp.
func (f *Frame) At(ts time.Time) (float64, bool) {
	i := sort.Search(len(f.Timestamps), func(i int) bool {
		return !f.Timestamps[i].Before(ts)
	})
	if i < len(f.Timestamps) && f.Timestamps[i].Equal(ts) {
		return f.Yhat[i], true
	}
	return 0, false
}

// Tail returns the last n rows as a new frame.
func (f *Frame) Tail(n int) *Frame {
	if n > f.Len() {
		n = f.Len()
	}
	return f.slice(f.Len()-n, f.Len())
}

// SplitAt partitions the frame at the given timestamp: fit holds rows with
// timestamps at or before it, future holds rows strictly after it.
// Confidence bounds are only meaningful for the future segment.
func (f *Frame) SplitAt(ts time.Time) (fit, future *Frame) {
	cut := sort.Search(len(f.Timestamps), func(i int) bool {
		return f.Timestamps[i].After(ts)
	})
	return f.slice(0, cut), f.slice(cut, f.Len())
}

// Points returns the frame as a slice of rows.
func (f *Frame) Points() []Point {
	points := make([]Point, f.Len())
	for i := range points {
		points[i] = Point{
			DS:        f.Timestamps[i],
			Yhat:      f.Yhat[i],
			YhatLower: f.YhatLower[i],
			YhatUpper: f.YhatUpper[i],
		}
	}
	return points
}

func (f *Frame) slice(start, end int) *Frame {
	out := NewFrame(end - start)
	for i := start; i < end; i++ {
		out.Append(f.Timestamps[i], f.Yhat[i], f.YhatLower[i], f.YhatUpper[i])
	}
	return out
}

// SaveCSV writes the frame to a delimited file with the canonical header
// ds,yhat,yhat_lower,yhat_upper.
func (f *Frame) SaveCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if _, err := writer.WriteString("ds,yhat,yhat_lower,yhat_upper\n"); err != nil {
		return err
	}

	layout := f.timestampLayout()
	for i := range f.Timestamps {
		row := fmt.Sprintf("%s,%s,%s,%s\n",
			f.Timestamps[i].Format(layout),
			strconv.FormatFloat(f.Yhat[i], 'f', -1, 64),
			strconv.FormatFloat(f.YhatLower[i], 'f', -1, 64),
			strconv.FormatFloat(f.YhatUpper[i], 'f', -1, 64))
		if _, err := writer.WriteString(row); err != nil {
			return err
		}
	}
	return nil
}

// timestampLayout picks the date-only layout when no row carries a clock
// component.
func (f *Frame) timestampLayout() string {
	for _, ts := range f.Timestamps {
		h, m, s := ts.Clock()
		if h != 0 || m != 0 || s != 0 {
			return "2006-01-02 15:04:05"
		}
	}
	return "2006-01-02"
}
