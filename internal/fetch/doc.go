// Package fetch downloads template documents and writes them into the
// project tree.
//
// Destinations are confined to the project root with
// github.com/cyphar/filepath-securejoin, so a manifest cannot write outside
// the checkout through ".." components or symlinks. Downloads use a
// go-cleanhttp client; there is no retry and no checksum, and every write is
// a full overwrite.
package fetch
