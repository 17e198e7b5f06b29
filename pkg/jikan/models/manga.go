package models

// Manga is an entry from /manga/{id} and /manga.
type Manga struct {
	MalID          int             `json:"mal_id" yaml:"mal_id"`
	URL            string          `json:"url" yaml:"url"`
	Images         Images          `json:"images" yaml:"images"`
	Approved       bool            `json:"approved" yaml:"approved"`
	Titles         []Title         `json:"titles" yaml:"titles"`
	Title          string          `json:"title" yaml:"title"`
	TitleEnglish   string          `json:"title_english,omitempty" yaml:"title_english,omitempty"`
	TitleJapanese  string          `json:"title_japanese,omitempty" yaml:"title_japanese,omitempty"`
	Type           string          `json:"type,omitempty" yaml:"type,omitempty"`
	Chapters       *int            `json:"chapters" yaml:"chapters"`
	Volumes        *int            `json:"volumes" yaml:"volumes"`
	Status         string          `json:"status,omitempty" yaml:"status,omitempty"`
	Publishing     bool            `json:"publishing" yaml:"publishing"`
	Published      Published       `json:"published" yaml:"published"`
	Score          *float64        `json:"score" yaml:"score"`
	ScoredBy       *int            `json:"scored_by" yaml:"scored_by"`
	Rank           *int            `json:"rank" yaml:"rank"`
	Popularity     int             `json:"popularity" yaml:"popularity"`
	Members        int             `json:"members" yaml:"members"`
	Favorites      int             `json:"favorites" yaml:"favorites"`
	Synopsis       string          `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	Authors        []NamedResource `json:"authors" yaml:"authors"`
	Serializations []NamedResource `json:"serializations" yaml:"serializations"`
	Genres         []Genre         `json:"genres" yaml:"genres"`
	Themes         []NamedResource `json:"themes" yaml:"themes"`
	Demographics   []NamedResource `json:"demographics" yaml:"demographics"`
}
