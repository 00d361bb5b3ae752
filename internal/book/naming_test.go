package book

import "testing"

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "Jane_Doe"},
		{"  Jane   Doe  ", "Jane_Doe"},
		{"Jean-Luc", "Jean_Luc"},
		{"O'Brien", "OBrien"},
		{"Dr. Strange!", "Dr_Strange"},
		{"already_safe", "already_safe"},
		{"___", ""},
		{"", ""},
		{"!!!", ""},
		{"日本 太郎", "日本_太郎"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			want := testCase.want
			if want == "" {
				want = AnonymousName
			}

			got := Sanitize(testCase.input)
			if got != want {
				t.Errorf("Sanitize(%q) = %q, want %q", testCase.input, got, want)
			}
		})
	}
}

func TestPhotoStemAndPageFile(t *testing.T) {
	t.Parallel()

	if got := PhotoStem(1, "Jane Doe"); got != "photo_01_Jane_Doe" {
		t.Errorf("PhotoStem = %q", got)
	}

	if got := PageFile(7, "Jane Doe"); got != "slam_page_07_Jane_Doe.html" {
		t.Errorf("PageFile = %q", got)
	}

	// Ordinals past two digits keep growing rather than truncating.
	if got := PageFile(123, "X"); got != "slam_page_123_X.html" {
		t.Errorf("PageFile = %q", got)
	}
}

func TestParsePageFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		ordinal  int
		name     string
		ok       bool
	}{
		{"slam_page_01_Jane_Doe.html", 1, "Jane_Doe", true},
		{"slam_page_42_X.html", 42, "X", true},
		{"slam_page_123_Long_Name.html", 123, "Long_Name", true},
		{"main_slam_book.html", 0, "", false},
		{"slam_page_01_Jane_Doe.txt", 0, "", false},
		{"slam_page_xx_Jane.html", 0, "", false},
		{"slam_page_00_Jane.html", 0, "", false},
		{"slam_page_01_.html", 0, "", false},
		{"slam_page_1.html", 0, "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.filename, func(t *testing.T) {
			t.Parallel()

			ordinal, name, ok := ParsePageFile(testCase.filename)
			if ok != testCase.ok || ordinal != testCase.ordinal || name != testCase.name {
				t.Errorf("ParsePageFile(%q) = (%d, %q, %v), want (%d, %q, %v)",
					testCase.filename, ordinal, name, ok, testCase.ordinal, testCase.name, testCase.ok)
			}
		})
	}
}

func TestPageFileRoundTrip(t *testing.T) {
	t.Parallel()

	ordinal, name, ok := ParsePageFile(PageFile(9, "Jane Doe"))
	if !ok || ordinal != 9 || name != "Jane_Doe" {
		t.Errorf("round trip = (%d, %q, %v)", ordinal, name, ok)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	if got := DisplayName("Jane_Doe"); got != "Jane Doe" {
		t.Errorf("DisplayName = %q", got)
	}
}
