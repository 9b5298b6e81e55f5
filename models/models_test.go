package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{total: 25, size: 10, want: 3},
		{total: 20, size: 10, want: 2},
		{total: 1, size: 10, want: 1},
		{total: 0, size: 10, want: 0},
		{total: 5, size: 0, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNewPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("last partial page", func(t *testing.T) {
		page := NewPage(items, 2, 10)
		assert.Equal(t, []int{20, 21, 22, 23, 24}, page.Content)
		assert.Equal(t, int64(25), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.NoError(t, page.Validate())
	})

	t.Run("past the end is empty, not nil", func(t *testing.T) {
		page := NewPage(items, 5, 10)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
		assert.NoError(t, page.Validate())
	})
}

func TestPageValidate(t *testing.T) {
	assert.Error(t, Page[int]{Content: []int{1, 2, 3}, Size: 2, TotalElements: 3, TotalPages: 2}.Validate())
	assert.Error(t, Page[int]{Content: []int{1}, Size: 10, TotalElements: 25, TotalPages: 2}.Validate())
	assert.NoError(t, Page[int]{Content: []int{1}, Size: 10, TotalElements: 25, TotalPages: 3}.Validate())
}

func TestTagSlug(t *testing.T) {
	assert.Equal(t, "go", TagSlug("Go"))
	assert.Equal(t, "web-dev", TagSlug("Web Dev"))
	assert.Equal(t, "spring-boot-3", TagSlug("Spring \t Boot  3"))
}

func TestCommentStatusValid(t *testing.T) {
	assert.True(t, CommentApproved.Valid())
	assert.False(t, CommentStatus("approved").Valid())
}

func TestTimestampDecodesZonelessDateTimes(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	var post Post
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"createdAt":"2024-01-15T10:30:00","updatedAt":"2024-01-15T10:30:00.250"}`), &post))
	assert.True(t, post.CreatedAt.Equal(want))
	assert.True(t, post.UpdatedAt.Equal(want.Add(250*time.Millisecond)))

	var comment Comment
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"postId":1,"createdAt":"2024-01-15T10:30:00"}`), &comment))
	assert.True(t, comment.CreatedAt.Equal(want))
}

func TestTimestamp(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want time.Time
	}{
		"rfc3339 utc":    {raw: `"2024-01-15T10:30:00Z"`, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		"rfc3339 offset": {raw: `"2024-01-15T12:30:00+02:00"`, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		"micros":         {raw: `"2024-01-15T10:30:00.123456"`, want: time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)},
		"null":           {raw: `null`},
		"empty":          {raw: `""`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, ts.Equal(tt.want), ts.String())
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"15/01/2024"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`1705314600`), &ts))

	out, err := json.Marshal(Post{CreatedAt: NewTimestamp(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":"2024-01-15T10:30:00Z"`)
}
