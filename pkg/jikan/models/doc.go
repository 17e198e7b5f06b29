// Package models holds the typed records returned by the Jikan v4 API.
//
// Every endpoint wraps its payload in an envelope: Single for one resource,
// Page for paginated lists and List for plain lists. Nullable numeric fields
// (score, episodes, year, ...) are pointers so that "unknown" stays distinct
// from zero.
package models
