// Package envfile reads, merges and writes dotenv-style configuration files.
//
// A document is an ordered list of lines. A line containing "=" is an entry
// whose key is the text before the first "="; every other line (comments,
// blanks) is carried through untouched.
//
// Merging upserts an ordered list of pairs:
//
//	text := envfile.Merge(existing, []envfile.Pair{
//	    {Key: "DB_HOST", Value: "localhost"},
//	    {Key: "DB_DATABASE", Value: "app_db"},
//	})
//
// An existing entry is rewritten in place, later duplicates of a merged key
// are dropped and absent keys are appended in the order given. Merge is
// idempotent.
//
// Merger applies the same operation to a file through system.FileSystem and
// replaces the file atomically (write to a sibling temp file, then rename).
package envfile
