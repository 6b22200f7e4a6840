package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
}

func TestNewPage(t *testing.T) {
	req := PageRequest{Page: 1, Size: 10}
	page := NewPage([]int{1, 2, 3}, 23, req)

	assert.Equal(t, []int{1, 2, 3}, page.Content)
	assert.Equal(t, int64(23), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 10, page.Size)
}

func TestNewPageExactFit(t *testing.T) {
	page := NewPage([]int{1, 2}, 20, PageRequest{Page: 0, Size: 10})
	assert.Equal(t, 2, page.TotalPages)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[int](nil, 0, PageRequest{Page: 0, Size: 10})
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalPages)
}
