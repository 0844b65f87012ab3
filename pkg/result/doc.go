// Package result holds the aggregate produced by a walk: one map per
// classification bucket keyed by slash-separated relative path, plus the
// set of script paths referenced directly by markup.
//
// A Result is not safe for concurrent mutation. The walker gives every
// concurrent unit its own Result and merges them after the units finish.
package result
