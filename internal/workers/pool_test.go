package workers

import (
	"sync/atomic"
	"testing"
)

func TestPoolDo(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var sum atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { sum.Add(int64(i)) }
	}
	p.Do(jobs)

	if got := sum.Load(); got != 4950 {
		t.Errorf("sum = %d, want 4950", got)
	}
}

func TestPoolDoAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	ran := 0
	p.Do([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		height, n int
		want      []Band
	}{
		{0, 4, nil},
		{10, 1, []Band{{0, 10}}},
		{10, 3, []Band{{0, 4}, {4, 7}, {7, 10}}},
		{2, 8, []Band{{0, 1}, {1, 2}}},
		{5, 0, []Band{{0, 5}}},
	}
	for _, tt := range tests {
		got := Bands(tt.height, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Bands(%d, %d) = %v, want %v", tt.height, tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Bands(%d, %d)[%d] = %v, want %v", tt.height, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}
