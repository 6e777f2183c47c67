package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellywell/ssccscan/internal/types"
)

func entry(i int) types.ScanEntry {
	return types.ScanEntry{
		Barcode:   fmt.Sprintf("code-%d", i),
		Found:     i%2 == 0,
		ScannedAt: time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC),
	}
}

func TestRecentOrder(t *testing.T) {
	r := NewRecent(3)
	assert.Empty(t, r.List())

	for i := 1; i <= 5; i++ {
		r.Add(entry(i))
	}

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "code-5", list[0].Barcode)
	assert.Equal(t, "code-4", list[1].Barcode)
	assert.Equal(t, "code-3", list[2].Barcode)
}

func TestRecentPartial(t *testing.T) {
	r := NewRecent(3)
	r.Add(entry(1))
	r.Add(entry(2))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "code-2", list[0].Barcode)
	assert.Equal(t, "code-1", list[1].Barcode)
}

func TestRecentDefaultCapacity(t *testing.T) {
	testCases := []int{0, -4}

	for _, size := range testCases {
		r := NewRecent(size)
		for i := 0; i < 25; i++ {
			r.Add(entry(i))
		}
		assert.Equal(t, DefaultCapacity, r.Len())
	}
}

func TestRecentListIsCopy(t *testing.T) {
	r := NewRecent(2)
	r.Add(entry(1))

	list := r.List()
	list[0].Barcode = "changed"

	assert.Equal(t, "code-1", r.List()[0].Barcode)
}

func TestRecentConcurrent(t *testing.T) {
	r := NewRecent(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Add(entry(i))
			_ = r.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Len())
}
