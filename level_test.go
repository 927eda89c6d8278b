package knyttbin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateLevel_Valid(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel",
		testEntry{path: "World.ini", payload: []byte("[World]")},
		testEntry{path: "Map.bin", payload: []byte{1}},
		testEntry{path: "Icon.png", payload: []byte("img")},
	)

	entries, err := ValidateLevel(newTestSource(data), ParseOptions{})
	if err != nil {
		t.Fatalf("ValidateLevel: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries)=%d, want 3", len(entries))
	}
}

func TestValidateLevel_CaseInsensitive(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel",
		testEntry{path: "WORLD.INI", payload: []byte("[World]")},
		testEntry{path: "MAP.BIN", payload: []byte{1}},
	)

	if _, err := ValidateLevel(newTestSource(data), ParseOptions{}); err != nil {
		t.Fatalf("ValidateLevel: %v", err)
	}
}

func TestValidateLevel_MissingMapBin(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: "World.ini", payload: []byte("[World]")})

	_, err := ValidateLevel(newTestSource(data), ParseOptions{})
	if !errors.Is(err, ErrMissingMapBin) {
		t.Fatalf("expected ErrMissingMapBin, got %v", err)
	}
	if errors.Is(err, ErrMissingWorldIni) {
		t.Fatalf("World.ini is present, got %v", err)
	}
}

func TestValidateLevel_MissingBoth(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel", testEntry{path: "Icon.png", payload: []byte("img")})

	_, err := ValidateLevel(newTestSource(data), ParseOptions{})
	if !errors.Is(err, ErrMissingWorldIni) || !errors.Is(err, ErrMissingMapBin) {
		t.Fatalf("expected both missing-file errors, got %v", err)
	}
}

func TestIsValidLevel(t *testing.T) {
	t.Parallel()

	valid := buildArchive("MyLevel",
		testEntry{path: "World.ini", payload: []byte("[World]")},
		testEntry{path: "Map.bin", payload: []byte{1}},
	)
	if !IsValidLevel(newTestSource(valid), ParseOptions{}) {
		t.Fatal("expected valid level")
	}

	missing := buildArchive("MyLevel", testEntry{path: "World.ini", payload: []byte("x")})
	if IsValidLevel(newTestSource(missing), ParseOptions{}) {
		t.Fatal("level without Map.bin must be invalid")
	}

	// Format errors collapse to false as well.
	corrupt := append(buildArchive("MyLevel"), []byte("XXjunk")...)
	if IsValidLevel(newTestSource(corrupt), ParseOptions{}) {
		t.Fatal("corrupt archive must be invalid")
	}

	if IsValidLevel(newTestSource(nil), ParseOptions{}) {
		t.Fatal("empty stream must be invalid")
	}
}

func TestLevelFileHelpers(t *testing.T) {
	t.Parallel()

	data := buildArchive("MyLevel",
		testEntry{path: "World.ini", payload: []byte("[World]")},
		testEntry{path: "Map.bin", payload: []byte{1}},
	)

	dir := t.TempDir()
	path := filepath.Join(dir, "MyLevel.knytt.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsValidLevelFile(path, ParseOptions{}) {
		t.Fatal("expected valid level file")
	}

	entries, err := ValidateLevelFile(path, ParseOptions{})
	if err != nil {
		t.Fatalf("ValidateLevelFile: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}

	name, err := ReadLevelNameFile(path, ParseOptions{})
	if err != nil {
		t.Fatalf("ReadLevelNameFile: %v", err)
	}
	if name != "MyLevel" {
		t.Errorf("name=%q, want MyLevel", name)
	}

	listed, err := ListAllFile(path, ParseOptions{})
	if err != nil {
		t.Fatalf("ListAllFile: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("len(listed)=%d, want 2", len(listed))
	}

	found, err := FindFile(path, []string{"map.BIN"}, false, ParseOptions{})
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if _, ok := found["map.BIN"]; !ok {
		t.Fatalf("FindFile result missing requested key, got %v", keys(found))
	}

	contents, err := ReadContentsFile(path, []string{"World.ini"}, true, ParseOptions{})
	if err != nil {
		t.Fatalf("ReadContentsFile: %v", err)
	}
	if string(contents["World.ini"]) != "[World]" {
		t.Errorf("World.ini=%q", contents["World.ini"])
	}

	if IsValidLevelFile(filepath.Join(dir, "missing.knytt.bin"), ParseOptions{}) {
		t.Fatal("missing file must be invalid")
	}
}
