// Package collection defines the vinyl collection data model shared across
// Clio services.
//
// It mirrors the payload the Kleio server returns for every read and mutation:
// releases with their artist, label, genre, and play metadata, the owned
// styluses, the flattened play history, and the sync markers. The Store type
// holds the most recent snapshot behind a mutex so command code always reads a
// consistent view while refreshes replace it atomically.
package collection
