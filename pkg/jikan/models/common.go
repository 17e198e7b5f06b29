package models

import "time"

// Single is the envelope Jikan uses for single-resource endpoints.
type Single[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// Page is the envelope Jikan uses for list endpoints.
type Page[T any] struct {
	Data       []T        `json:"data" yaml:"data"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// List is the envelope for unpaginated lists such as /anime/{id}/characters.
type List[T any] struct {
	Data []T `json:"data" yaml:"data"`
}

// Pagination describes where a Page sits in the full result set.
type Pagination struct {
	LastVisiblePage int   `json:"last_visible_page" yaml:"last_visible_page"`
	HasNextPage     bool  `json:"has_next_page" yaml:"has_next_page"`
	CurrentPage     int   `json:"current_page,omitempty" yaml:"current_page,omitempty"`
	Items           Items `json:"items,omitempty" yaml:"items,omitempty"`
}

// Items holds result counts for a Page.
type Items struct {
	Count   int `json:"count" yaml:"count"`
	Total   int `json:"total" yaml:"total"`
	PerPage int `json:"per_page" yaml:"per_page"`
}

// Image holds the URLs for one image format.
type Image struct {
	ImageURL      string `json:"image_url" yaml:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty" yaml:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty" yaml:"large_image_url,omitempty"`
}

// Images groups the formats Jikan serves.
type Images struct {
	JPG  Image `json:"jpg" yaml:"jpg"`
	WebP Image `json:"webp" yaml:"webp"`
}

// Title is one of a resource's titles, e.g. {"Default", "Cowboy Bebop"}.
type Title struct {
	Type  string `json:"type" yaml:"type"`
	Title string `json:"title" yaml:"title"`
}

// NamedResource is a reference to another MyAnimeList resource
// (genre, studio, author, magazine, ...).
type NamedResource struct {
	MalID int    `json:"mal_id" yaml:"mal_id"`
	Type  string `json:"type" yaml:"type"`
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
}

// Genre is a NamedResource of type "anime" or "manga" listed under genres.
type Genre = NamedResource

// DateRange is an airing or publishing period.
type DateRange struct {
	From   *time.Time `json:"from" yaml:"from"`
	To     *time.Time `json:"to" yaml:"to"`
	String string     `json:"string" yaml:"string"`
}

// Aired is the airing period of an anime.
type Aired = DateRange

// Published is the publishing period of a manga.
type Published = DateRange

// Broadcast is when an airing anime is shown each week.
type Broadcast struct {
	Day      string `json:"day" yaml:"day"`
	Time     string `json:"time" yaml:"time"`
	Timezone string `json:"timezone" yaml:"timezone"`
	String   string `json:"string" yaml:"string"`
}
