package extract

import (
	"context"
	"testing"
)

func TestTextFromPlainFiles(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		want     string
	}{
		{
			name:     "plain txt",
			filename: "notes.txt",
			content:  []byte("hello world"),
			want:     "hello world",
		},
		{
			name:     "markdown",
			filename: "README.md",
			content:  []byte("# title"),
			want:     "# title",
		},
		{
			name:     "uppercase extension",
			filename: "NOTES.TXT",
			content:  []byte("upper"),
			want:     "upper",
		},
		{
			name:     "null bytes stripped",
			filename: "dirty.txt",
			content:  []byte("hel\x00lo"),
			want:     "hello",
		},
		{
			name:     "invalid utf8 stripped",
			filename: "dirty.txt",
			content:  []byte{'a', 0xff, 'b'},
			want:     "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(context.Background(), tt.filename, tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected text: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean text passes through",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "null and low control bytes stripped",
			input: "hel\x00lo\x01 wor\x02ld",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines kept",
			input: "line one\n\tline two\r\n",
			want:  "line one\n\tline two\r\n",
		},
		{
			name:  "delete byte stripped",
			input: "ab\x7fc",
			want:  "abc",
		},
		{
			name:  "invalid utf8 stripped",
			input: string([]byte{'a', 0xff, 'b'}),
			want:  "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Fatalf("unexpected sanitized value: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextRejectsUnsupportedTypes(t *testing.T) {
	for _, filename := range []string{"image.png", "archive.zip", "noext"} {
		if _, err := Text(context.Background(), filename, []byte("data")); err == nil {
			t.Fatalf("%s: expected an error", filename)
		}
	}
}
