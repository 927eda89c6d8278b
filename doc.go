// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

/*
Package knyttbin reads and extracts Knytt Stories level archives
(.knytt.bin). The format is a plain sequential container: a repeating series
of (path, size, payload) records with no index, no footer, and no
compression. Every operation is a specialization of one streaming walk that
parses a record header, validates the embedded path, hands the payload
region to a handler, and skips whatever the handler did not consume, so
memory stays O(1) in archive size and hostile archive bytes cannot force
unbounded buffering.

The first record of every archive names the level's top-level directory and
never describes a real file; all operations skip it. ReadLevelName returns
it for callers that need the directory name.

# Listing and lookup

List all entries or look up selected paths without reading payloads:

	src, err := knyttbin.OpenFile("MyLevel.knytt.bin")
	if err != nil {
	    return err
	}
	defer src.Close()

	entries, err := knyttbin.ListAll(src, knyttbin.ParseOptions{})
	if err != nil {
	    return err
	}
	for path, h := range entries {
	    fmt.Println(path, h.Size)
	}

Lookups stop walking as soon as every target is found and key results by the
string the caller asked for, not the archive's own casing:

	found, err := knyttbin.FindFile("MyLevel.knytt.bin",
	    []string{"Icon.png", "World.ini"}, false, knyttbin.ParseOptions{})

# Reading contents

	contents, err := knyttbin.ReadContentsFile("MyLevel.knytt.bin",
	    []string{"World.ini"}, false, knyttbin.ParseOptions{})
	if err != nil {
	    return err
	}
	ini := contents["World.ini"]

# Extracting

Extraction streams payloads straight to disk, caps output file size, and
rejects traversal or absolute paths before any file is created. Filters use
github.com/woozymasta/pathrules include/exclude patterns:

	written, err := knyttbin.ExtractAllFile("MyLevel.knytt.bin", "out/",
	    knyttbin.ParseOptions{ForceUnixSeparator: true},
	    knyttbin.ExtractOptions{
	        MaxFileSize: 64 << 20,
	        Filter: []pathrules.Rule{
	            {Action: pathrules.ActionInclude, Pattern: "*.png"},
	        },
	    })

# Path policy

Archive paths are stored in Windows-1252. Validation runs on the raw bytes;
set TargetEncoding to get transcoded paths back:

	opts := knyttbin.ParseOptions{
	    ForceUnixSeparator: true,
	    TargetEncoding:     knyttbin.EncodingUTF8,
	    ExtensionPolicy: knyttbin.ExtensionPolicy{
	        Mode:       knyttbin.ExtensionPolicyForbid,
	        Extensions: []string{"exe", "dll"},
	    },
	}

# Level validity

	if knyttbin.IsValidLevelFile("MyLevel.knytt.bin", knyttbin.ParseOptions{}) {
	    // archive parses and contains World.ini and Map.bin
	}

All errors are sentinel values checked with errors.Is; specific conditions
wrap one of the categories ErrFormat, ErrPathPolicy, ErrResourceLimit, and
ErrHandlerOverrun. The library never skips an unsafe entry silently: a
rejected path aborts the whole walk, because record boundaries downstream of
a suspect record cannot be trusted.
*/
package knyttbin
