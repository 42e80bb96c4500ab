package domain

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/storefront/internal/store"
)

func TestReadTime(t *testing.T) {
	tests := []struct {
		name    string
		words   int
		want    int
	}{
		{name: "empty content floors at one minute", words: 0, want: 1},
		{name: "single word", words: 1, want: 1},
		{name: "exactly one page", words: 200, want: 1},
		{name: "just over one page", words: 201, want: 2},
		{name: "exactly two pages", words: 400, want: 2},
		{name: "long form", words: 1999, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := ReadTime(content); got != tt.want {
				t.Errorf("ReadTime(%d words) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}

func TestReadTimeSplitsOnAnyWhitespace(t *testing.T) {
	content := "one\ttwo\nthree  four\r\nfive"
	if got := ReadTime(content); got != 1 {
		t.Errorf("ReadTime() = %v, want 1", got)
	}
}

func TestDerivedFields(t *testing.T) {
	tests := []struct {
		name       string
		collection store.Collection
		fields     map[string]any
		wantKey    string
		want       any
	}{
		{
			name:       "blog content sets readTime",
			collection: store.Blogs,
			fields:     map[string]any{"content": strings.Repeat("w ", 400)},
			wantKey:    "readTime",
			want:       2,
		},
		{
			name:       "blog without content derives nothing",
			collection: store.Blogs,
			fields:     map[string]any{"title": "new title"},
		},
		{
			name:       "non-blog content derives nothing",
			collection: store.Products,
			fields:     map[string]any{"content": "irrelevant"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivedFields(tt.collection, tt.fields)
			if tt.wantKey == "" {
				if len(got) != 0 {
					t.Errorf("DerivedFields() = %v, want empty", got)
				}
				return
			}
			if got[tt.wantKey] != tt.want {
				t.Errorf("DerivedFields()[%s] = %v, want %v", tt.wantKey, got[tt.wantKey], tt.want)
			}
		})
	}
}
