package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteWebPRefs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		count int
	}{
		{
			name:  "img src",
			input: `<img src="photo_01_Jane_Doe.jpg">`,
			want:  `<img src="photo_01_Jane_Doe.webp">`,
			count: 1,
		},
		{
			name:  "single quotes and path prefix",
			input: `ImageUrl: 'output/photo_02_Bob.png'`,
			want:  `ImageUrl: 'output/photo_02_Bob.webp'`,
			count: 1,
		},
		{
			name:  "uppercase extension",
			input: `"photo_03_X.JPEG"`,
			want:  `"photo_03_X.webp"`,
			count: 1,
		},
		{
			name:  "multiple references",
			input: `"photo_01_A.jpg" and "photo_02_B.png"`,
			want:  `"photo_01_A.webp" and "photo_02_B.webp"`,
			count: 2,
		},
		{
			name:  "non-photo asset untouched",
			input: `<img src="mainPage.png">`,
			want:  `<img src="mainPage.png">`,
			count: 0,
		},
		{
			name:  "already webp untouched",
			input: `<img src="photo_01_Jane.webp">`,
			want:  `<img src="photo_01_Jane.webp">`,
			count: 0,
		},
		{
			name:  "unquoted reference untouched",
			input: `see photo_01_Jane.jpg in the folder`,
			want:  `see photo_01_Jane.jpg in the folder`,
			count: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, count := RewriteWebPRefs([]byte(testCase.input))
			if string(got) != testCase.want {
				t.Errorf("rewrite = %q, want %q", got, testCase.want)
			}

			if count != testCase.count {
				t.Errorf("count = %d, want %d", count, testCase.count)
			}
		})
	}
}

func TestRewriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")

	err := os.WriteFile(path, []byte(`<img src="photo_01_Jane.jpg"><img src="photo_02_Bob.jpeg">`), 0o644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	count, err := RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	if strings.Contains(string(content), ".jpg") || strings.Contains(string(content), ".jpeg") {
		t.Errorf("legacy references survived: %s", content)
	}
}

func TestRewriteFileNoChanges(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	original := `<img src="photo_01_Jane.webp">`

	err := os.WriteFile(path, []byte(original), 0o644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	count, err := RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
