package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 4, "verses", true)

	p.Add(1)
	assert.Contains(t, buf.String(), "1/4 verses")
	assert.Contains(t, buf.String(), strings.Repeat("█", 7)+strings.Repeat("░", 23))

	p.Add(10)
	assert.Equal(t, 4, p.Current())
	assert.Contains(t, buf.String(), "["+strings.Repeat("█", 30)+"] 4/4 verses")

	p.Finish()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0, "", true)
	p.Add(1)
	p.Finish()
	assert.Empty(t, buf.String())
}

func TestProgressConcurrent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 100, "", true)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, p.Current())
}
