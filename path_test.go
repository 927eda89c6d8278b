package knyttbin

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestValidate_RejectedPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		opts    ParseOptions
		wantErr error
	}{
		{name: "traversal", path: "../secret", wantErr: ErrPathTraversal},
		{name: "traversal nested", path: "a/../b.png", wantErr: ErrPathTraversal},
		{name: "traversal backslash", path: `..\secret`, wantErr: ErrPathTraversal},
		{name: "absolute", path: "/etc/passwd", wantErr: ErrAbsolutePath},
		{name: "absolute backslash", path: `\Windows\evil.png`, wantErr: ErrAbsolutePath},
		{name: "drive prefix", path: "C:/Windows/evil.png", wantErr: ErrAbsolutePath},
		{name: "drive prefix backslash", path: `c:\evil.png`, wantErr: ErrAbsolutePath},
		{name: "trailing slash", path: "Gfx/", wantErr: ErrTrailingSlash},
		{name: "trailing backslash", path: `Gfx\`, wantErr: ErrTrailingSlash},
		{
			name:    "dot segment rejected when configured",
			path:    "a/./b.png",
			opts:    ParseOptions{RejectDotSegments: true},
			wantErr: ErrDotSegment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := buildArchive("MyLevel", testEntry{path: tt.path})
			_, err := ListAll(newTestSource(data), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("path %q: got %v, want %v", tt.path, err, tt.wantErr)
			}
			if !errors.Is(err, ErrPathPolicy) {
				t.Fatalf("path %q: error should wrap ErrPathPolicy, got %v", tt.path, err)
			}
		})
	}
}

func TestValidate_EmptyPath(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: ""})
	_, err := ListAll(newTestSource(data), ParseOptions{})
	if !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestValidate_DotSegmentAllowedByDefault(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: "a/./b.png"})
	entries, err := ListAll(newTestSource(data), ParseOptions{})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries["a/./b.png"]; !ok {
		t.Fatal("dot-segment path missing from results")
	}
}

func TestValidate_LevelRecordRules(t *testing.T) {
	t.Parallel()

	_, err := ListAll(newTestSource(buildArchive("Nested/Level")), ParseOptions{})
	if !errors.Is(err, ErrLevelNameNested) {
		t.Fatalf("expected ErrLevelNameNested, got %v", err)
	}

	_, err = ListAll(newTestSource(buildArchive("My.Level")), ParseOptions{RejectDotInLevelName: true})
	if !errors.Is(err, ErrLevelNameDot) {
		t.Fatalf("expected ErrLevelNameDot, got %v", err)
	}

	// The level record is exempt from the extension policy.
	data := buildArchive("MyLevel", testEntry{path: "World.ini"})
	_, err = ListAll(newTestSource(data), ParseOptions{
		ExtensionPolicy: ExtensionPolicy{Mode: ExtensionPolicyAllow, Extensions: []string{"ini"}},
	})
	if err != nil {
		t.Fatalf("level record should bypass extension policy: %v", err)
	}
}

func TestValidate_ExtensionAllowList(t *testing.T) {
	t.Parallel()

	opts := ParseOptions{
		ExtensionPolicy: ExtensionPolicy{
			Mode:       ExtensionPolicyAllow,
			Extensions: []string{"ini", ".png", "bin"},
		},
	}

	good := buildArchive("MyLevel",
		testEntry{path: "World.ini"},
		testEntry{path: "Gfx/ICON.PNG"},
	)
	entries, err := ListAll(newTestSource(good), opts)
	if err != nil {
		t.Fatalf("ListAll allow-list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}

	bad := buildArchive("MyLevel", testEntry{path: "evil.exe"})
	if _, err := ListAll(newTestSource(bad), opts); !errors.Is(err, ErrExtensionNotAllowed) {
		t.Fatalf("expected ErrExtensionNotAllowed, got %v", err)
	}

	noExt := buildArchive("MyLevel", testEntry{path: "README"})
	if _, err := ListAll(newTestSource(noExt), opts); !errors.Is(err, ErrExtensionNotAllowed) {
		t.Fatalf("extensionless path must fail allow-list, got %v", err)
	}
}

func TestValidate_ExtensionForbiddenList(t *testing.T) {
	t.Parallel()

	opts := ParseOptions{
		ExtensionPolicy: ExtensionPolicy{
			Mode:       ExtensionPolicyForbid,
			Extensions: []string{"exe", "dll"},
		},
	}

	good := buildArchive("MyLevel",
		testEntry{path: "World.ini"},
		testEntry{path: "README"},
	)
	if _, err := ListAll(newTestSource(good), opts); err != nil {
		t.Fatalf("ListAll forbidden-list: %v", err)
	}

	for _, path := range []string{"evil.exe", "EVIL.EXE", "Gfx/evil.dll"} {
		bad := buildArchive("MyLevel", testEntry{path: path})
		if _, err := ListAll(newTestSource(bad), opts); !errors.Is(err, ErrExtensionForbidden) {
			t.Fatalf("path %q: expected ErrExtensionForbidden, got %v", path, err)
		}
	}
}

func TestValidate_EmptyAllowListPermitsNothing(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: "World.ini"})
	_, err := ListAll(newTestSource(data), ParseOptions{
		ExtensionPolicy: ExtensionPolicy{Mode: ExtensionPolicyAllow},
	})
	if !errors.Is(err, ErrExtensionNotAllowed) {
		t.Fatalf("expected ErrExtensionNotAllowed, got %v", err)
	}
}

func TestValidate_ForceUnixSeparator(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: `Gfx\Tileset.png`})

	entries, err := ListAll(newTestSource(data), ParseOptions{ForceUnixSeparator: true})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries["Gfx/Tileset.png"]; !ok {
		t.Fatalf("normalized path missing, got keys %v", keys(entries))
	}

	entries, err = ListAll(newTestSource(data), ParseOptions{})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries[`Gfx\Tileset.png`]; !ok {
		t.Fatalf("original separators should be kept, got keys %v", keys(entries))
	}
}

func TestValidate_TranscodePath(t *testing.T) {
	t.Parallel()

	// 0xE9 is "é" in Windows-1252.
	data := buildArchive("MyLevel", testEntry{path: "caf\xe9.png"})

	entries, err := ListAll(newTestSource(data), ParseOptions{TargetEncoding: EncodingUTF8})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries["café.png"]; !ok {
		t.Fatalf("transcoded path missing, got keys %v", keys(entries))
	}

	// Without a target encoding the raw byte passes through verbatim.
	entries, err = ListAll(newTestSource(data), ParseOptions{})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries["caf\xe9.png"]; !ok {
		t.Fatalf("raw path missing, got keys %v", keys(entries))
	}
}

func TestValidate_TranscodeUnrepresentable(t *testing.T) {
	t.Parallel()

	// 0x80 is "€" in Windows-1252, which ISO 8859-1 cannot represent.
	data := buildArchive("MyLevel", testEntry{path: "price\x80.png"})

	_, err := ListAll(newTestSource(data), ParseOptions{TargetEncoding: charmap.ISO8859_1})
	if !errors.Is(err, ErrEncodePath) {
		t.Fatalf("expected ErrEncodePath, got %v", err)
	}
}

func TestValidate_SubstituteSourceEncoding(t *testing.T) {
	t.Parallel()

	// 0xE9 decodes to "щ" under ISO 8859-5 instead of "é".
	data := buildArchive("MyLevel", testEntry{path: "a\xe9.png"})

	entries, err := ListAll(newTestSource(data), ParseOptions{
		SourceEncoding: charmap.ISO8859_5,
		TargetEncoding: EncodingUTF8,
	})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if _, ok := entries["aщ.png"]; !ok {
		t.Fatalf("substituted-encoding path missing, got keys %v", keys(entries))
	}
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a/b.png", "a/b.png"},
		{`a\b.png`, "a/b.png"},
		{"./a/b.png", "a/b.png"},
		{"/a/b.png", "a/b.png"},
		{"a//b.png", "a/b.png"},
		{"a/./b.png", "a/b.png"},
		{" a.png ", "a.png"},
		{"", ""},
		{".", ""},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

// keys returns map keys for test failure messages.
func keys(m map[string]RecordHeader) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
