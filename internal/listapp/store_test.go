package listapp

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(context.Background())
	t.Cleanup(store.Stop)
	return store
}

func fill(t *testing.T, store *Store, n int) []string {
	t.Helper()
	var want []string
	for i := 0; i < n; i++ {
		item := fmt.Sprintf("item-%d", i)
		if err := store.Add(context.Background(), item); err != nil {
			t.Fatalf("Add(%q) error = %v", item, err)
		}
		want = append(want, item)
	}
	return want
}

func TestLastN(t *testing.T) {
	tests := []struct {
		name   string
		stored int
		n      uint64
	}{
		{"fewer than n", 3, 5},
		// The store does not window: all five come back.
		{"more than n", 5, 3},
		{"exactly n", 4, 4},
		{"empty", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			want := fill(t, store, tt.stored)

			got, err := store.LastN(context.Background(), tt.n)
			if err != nil {
				t.Fatalf("LastN() error = %v", err)
			}
			if len(got) != tt.stored {
				t.Errorf("LastN(%d) returned %d items, want %d", tt.n, len(got), tt.stored)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("LastN() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	fill(t, store, 2)

	first, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	first[0] = "mutated"

	second, _ := store.All(context.Background())
	if second[0] != "item-0" {
		t.Errorf("All() shares storage with a previous reply: %q", second[0])
	}
}

func TestConcurrentAdds(t *testing.T) {
	store := newTestStore(t)
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Add(context.Background(), fmt.Sprintf("%03d", i)); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	sort.Strings(got)
	if len(got) != n {
		t.Fatalf("stored %d items, want %d", len(got), n)
	}
	for i, item := range got {
		if want := fmt.Sprintf("%03d", i); item != want {
			t.Errorf("got[%d] = %q, want %q", i, item, want)
		}
	}
	if p := store.Actor().Processed(); p != n+1 {
		t.Errorf("Processed() = %d, want %d", p, n+1)
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		body   string
		want   string
		wantOK bool
	}{
		{"message=hello", "hello", true},
		{"message=hello+world", "hello world", true},
		{"message=a%20b", "a b", true},
		{"message=100%", "100%", true},
		{"message=", "", true},
		{"nomessage", "", false},
		{"", "", false},
		{"other=1&message=x", "", false},
	}
	for _, tt := range tests {
		got, ok := parseMessage(tt.body)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseMessage(%q) = %q, %v; want %q, %v", tt.body, got, ok, tt.want, tt.wantOK)
		}
	}
}
