package drive

import (
	"errors"
	"testing"
)

func TestExtractFileID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{
			name: "file view link",
			url:  "https://drive.google.com/file/d/1AbC-dEf_123/view?usp=sharing",
			want: "1AbC-dEf_123",
		},
		{
			name: "open link",
			url:  "https://drive.google.com/open?id=1AbC-dEf_123",
			want: "1AbC-dEf_123",
		},
		{
			name: "user scoped open link",
			url:  "https://drive.google.com/u/0/open?id=xyz789",
			want: "xyz789",
		},
		{
			name: "file link without view suffix",
			url:  "https://drive.google.com/file/d/abc123",
			want: "abc123",
		},
		{
			name: "surrounding whitespace",
			url:  "  https://drive.google.com/open?id=abc123  ",
			want: "abc123",
		},
		{
			name:    "folder link",
			url:     "https://drive.google.com/drive/folders/1AbC123",
			wantErr: ErrFolderRef,
		},
		{
			name:    "empty",
			url:     "",
			wantErr: ErrEmptyRef,
		},
		{
			name:    "whitespace only",
			url:     "   ",
			wantErr: ErrEmptyRef,
		},
		{
			name:    "not a drive link",
			url:     "https://example.com/photo.jpg",
			wantErr: ErrBadRef,
		},
		{
			name:    "id with invalid characters",
			url:     "https://drive.google.com/open?id=abc/123",
			wantErr: ErrBadRef,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractFileID(testCase.url)

			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("expected %v, got %v", testCase.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ExtractFileID failed: %v", err)
			}

			if got != testCase.want {
				t.Errorf("ExtractFileID(%q) = %q, want %q", testCase.url, got, testCase.want)
			}
		})
	}
}
