package models

// Anime is an entry from /anime/{id}, /anime, /top/anime and /schedules.
type Anime struct {
	MalID          int             `json:"mal_id" yaml:"mal_id"`
	URL            string          `json:"url" yaml:"url"`
	Images         Images          `json:"images" yaml:"images"`
	Approved       bool            `json:"approved" yaml:"approved"`
	Titles         []Title         `json:"titles" yaml:"titles"`
	Title          string          `json:"title" yaml:"title"`
	TitleEnglish   string          `json:"title_english,omitempty" yaml:"title_english,omitempty"`
	TitleJapanese  string          `json:"title_japanese,omitempty" yaml:"title_japanese,omitempty"`
	Type           string          `json:"type,omitempty" yaml:"type,omitempty"`
	Source         string          `json:"source,omitempty" yaml:"source,omitempty"`
	Episodes       *int            `json:"episodes" yaml:"episodes"`
	Status         string          `json:"status,omitempty" yaml:"status,omitempty"`
	Airing         bool            `json:"airing" yaml:"airing"`
	Aired          Aired           `json:"aired" yaml:"aired"`
	Duration       string          `json:"duration,omitempty" yaml:"duration,omitempty"`
	Rating         string          `json:"rating,omitempty" yaml:"rating,omitempty"`
	Score          *float64        `json:"score" yaml:"score"`
	ScoredBy       *int            `json:"scored_by" yaml:"scored_by"`
	Rank           *int            `json:"rank" yaml:"rank"`
	Popularity     int             `json:"popularity" yaml:"popularity"`
	Members        int             `json:"members" yaml:"members"`
	Favorites      int             `json:"favorites" yaml:"favorites"`
	Synopsis       string          `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	Season         string          `json:"season,omitempty" yaml:"season,omitempty"`
	Year           *int            `json:"year" yaml:"year"`
	Broadcast      Broadcast       `json:"broadcast" yaml:"broadcast"`
	Producers      []NamedResource `json:"producers" yaml:"producers"`
	Studios        []NamedResource `json:"studios" yaml:"studios"`
	Genres         []Genre         `json:"genres" yaml:"genres"`
	ExplicitGenres []Genre         `json:"explicit_genres" yaml:"explicit_genres"`
	Themes         []NamedResource `json:"themes" yaml:"themes"`
	Demographics   []NamedResource `json:"demographics" yaml:"demographics"`
}

// CharacterRole is one entry of /anime/{id}/characters: a character and the
// part they play in the show.
type CharacterRole struct {
	Character   Character    `json:"character" yaml:"character"`
	Role        string       `json:"role" yaml:"role"`
	Favorites   int          `json:"favorites" yaml:"favorites"`
	VoiceActors []VoiceActor `json:"voice_actors" yaml:"voice_actors"`
}

// Character is the short character record embedded in CharacterRole.
type Character struct {
	MalID  int    `json:"mal_id" yaml:"mal_id"`
	URL    string `json:"url" yaml:"url"`
	Images Images `json:"images" yaml:"images"`
	Name   string `json:"name" yaml:"name"`
}

// VoiceActor is a person voicing a character in one language.
type VoiceActor struct {
	Person   Person `json:"person" yaml:"person"`
	Language string `json:"language" yaml:"language"`
}

// Person is the short person record embedded in VoiceActor.
type Person struct {
	MalID  int    `json:"mal_id" yaml:"mal_id"`
	URL    string `json:"url" yaml:"url"`
	Images Images `json:"images" yaml:"images"`
	Name   string `json:"name" yaml:"name"`
}
