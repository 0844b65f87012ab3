// Package output renders a walk Result for people and for other tools.
//
// The text format is meant for terminals: a styled heading, a bucket
// summary table and the sorted paths of every non-empty bucket. Styles
// are defined in styles.yaml with adaptive light/dark colours and are
// dropped entirely when colour is disabled.
//
// The json, yaml, toml and xml formats all serialize the same Document,
// with buckets and paths in a stable order so output can be diffed.
package output
