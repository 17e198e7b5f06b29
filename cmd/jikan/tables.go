package main

import (
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/jikan/models"
	"mercator-hq/jikan/pkg/limits/ratelimit"
)

type animeTable []models.Anime

func (t animeTable) Table() cli.Table {
	table := cli.Table{Headers: []string{"ID", "TITLE", "TYPE", "EPISODES", "SCORE", "STATUS", "YEAR"}}
	for _, a := range t {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(a.MalID),
			a.Title,
			dash(a.Type),
			intOrDash(a.Episodes),
			scoreOrDash(a.Score),
			dash(a.Status),
			intOrDash(a.Year),
		})
	}
	return table
}

type mangaTable []models.Manga

func (t mangaTable) Table() cli.Table {
	table := cli.Table{Headers: []string{"ID", "TITLE", "TYPE", "CHAPTERS", "VOLUMES", "SCORE", "STATUS"}}
	for _, m := range t {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(m.MalID),
			m.Title,
			dash(m.Type),
			intOrDash(m.Chapters),
			intOrDash(m.Volumes),
			scoreOrDash(m.Score),
			dash(m.Status),
		})
	}
	return table
}

type characterTable []models.CharacterRole

func (t characterTable) Table() cli.Table {
	table := cli.Table{Headers: []string{"ID", "NAME", "ROLE", "FAVORITES", "VOICE ACTORS"}}
	for _, c := range t {
		actors := make([]string, 0, len(c.VoiceActors))
		for _, va := range c.VoiceActors {
			actors = append(actors, fmt.Sprintf("%s (%s)", va.Person.Name, va.Language))
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(c.Character.MalID),
			c.Character.Name,
			c.Role,
			strconv.Itoa(c.Favorites),
			dash(strings.Join(actors, ", ")),
		})
	}
	return table
}

// windowInfo is one rate window as shown by the limits command.
type windowInfo struct {
	Window   string  `json:"window" yaml:"window"`
	Permits  int     `json:"permits" yaml:"permits"`
	Cooldown string  `json:"cooldown" yaml:"cooldown"`
	MaxRate  float64 `json:"max_rate_per_second" yaml:"max_rate_per_second"`
}

type windowTable []windowInfo

func newWindowTable(windows []ratelimit.RateWindow) windowTable {
	t := make(windowTable, len(windows))
	for i, w := range windows {
		t[i] = windowInfo{
			Window:   w.String(),
			Permits:  w.Count,
			Cooldown: w.Duration.String(),
			MaxRate:  w.MaxRate(),
		}
	}
	return t
}

func (t windowTable) Table() cli.Table {
	table := cli.Table{Headers: []string{"WINDOW", "PERMITS", "COOLDOWN", "MAX RATE"}}
	for _, w := range t {
		table.Rows = append(table.Rows, []string{
			w.Window,
			strconv.Itoa(w.Permits),
			w.Cooldown,
			fmt.Sprintf("%.2f/s", w.MaxRate),
		})
	}
	return table
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func scoreOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
