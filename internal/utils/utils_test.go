package utils

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordID_SortsInCreationOrder(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = NewRecordID()
	}

	assert.True(t, sort.StringsAreSorted(ids))
	for _, id := range ids {
		assert.Len(t, id, 26)
		assert.Equal(t, strings.ToLower(id), id)
	}
}

func TestNewRecordID_ConcurrentUnique(t *testing.T) {
	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewRecordID()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestNewUserID(t *testing.T) {
	id := NewUserID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewUserID())
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "brief.pdf", expected: "brief.pdf"},
		{name: "unix path", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows path", input: `C:\Users\me\contract.docx`, expected: "contract.docx"},
		{name: "spaces kept", input: "  my file.txt ", expected: "my file.txt"},
		{name: "control chars", input: "a\x00b\nc.txt", expected: "abc.txt"},
		{name: "dot dot", input: "..", expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "trailing slash", input: "dir/", expected: "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeFilename(tt.input))
		})
	}
}

func TestSafeFilename_TruncatesKeepingExtension(t *testing.T) {
	long := strings.Repeat("x", 300) + ".pdf"
	got := SafeFilename(long)
	assert.Len(t, got, 200)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}
