package utils

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDrain(t *testing.T) {
	var got [][]int
	err := Drain([]int{1, 2, 3, 4, 5}, 2, func(batch []int) error {
		got = append(got, batch)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := [][]int{{1, 2}, {3, 4}, {5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batches (-want +got):\n%s", diff)
	}
}

func TestDrainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Drain([]string{"a", "b", "c"}, 1, func([]string) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestBatchBuffer(t *testing.T) {
	b := NewBatchBuffer[int](0)
	if b.HasData() {
		t.Fatal("new buffer should be empty")
	}
	for i := 0; i < DEFAULT_BATCH_SIZE-1; i++ {
		if b.Add(i) {
			t.Fatalf("buffer reported full after %d items", i+1)
		}
	}
	if !b.Add(99) {
		t.Error("buffer should be full")
	}
	if n := len(b.GetAndClear()); n != DEFAULT_BATCH_SIZE {
		t.Errorf("batch has %d items", n)
	}
	if b.GetAndClear() != nil {
		t.Error("cleared buffer should return nil")
	}
}
