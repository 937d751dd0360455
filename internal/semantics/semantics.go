// Package semantics implements the static token-to-tags database and the
// Jaccard-similarity context scorer.
package semantics

import "strings"

// DB is a static, read-only mapping from token to its set of semantic tags.
// Safe for concurrent reads once built.
type DB struct {
	tags map[string]map[string]struct{}
}

func New() *DB {
	return &DB{tags: make(map[string]map[string]struct{})}
}

// Add registers tags for token, merging with any tags already present.
func (db *DB) Add(token string, tags ...string) {
	key := strings.ToLower(token)
	set, ok := db.tags[key]
	if !ok {
		set = make(map[string]struct{}, len(tags))
		db.tags[key] = set
	}
	for _, t := range tags {
		set[t] = struct{}{}
	}
}

// TagsOf returns the tag set for token, or nil if the token is unknown.
func (db *DB) TagsOf(token string) map[string]struct{} {
	return db.tags[strings.ToLower(token)]
}

// ContextScore is the Jaccard similarity of candidate's tags against the
// union of tags of every token in ctxTokens. If either set is empty the
// result is the neutral default 0.5.
func (db *DB) ContextScore(candidate string, ctxTokens []string) float64 {
	candTags := db.TagsOf(candidate)

	ctxTags := make(map[string]struct{})
	for _, tok := range ctxTokens {
		for t := range db.TagsOf(tok) {
			ctxTags[t] = struct{}{}
		}
	}

	if len(candTags) == 0 || len(ctxTags) == 0 {
		return 0.5
	}
	return jaccard(candTags, ctxTags)
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
