package jikan

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/jikan/guard"
	"mercator-hq/jikan/pkg/jikan/models"
)

// Endpoint names used in logs, metrics and span names.
const (
	EndpointAnime           = "anime"
	EndpointManga           = "manga"
	EndpointAnimeCharacters = "anime_characters"
	EndpointSearchAnime     = "search_anime"
	EndpointSearchManga     = "search_manga"
	EndpointTopAnime        = "top_anime"
	EndpointSchedules       = "schedules"
)

// GetAnime fetches /anime/{id}.
func (c *Client) GetAnime(ctx context.Context, id int) (*models.Anime, error) {
	if err := guard.Positive("id", id); err != nil {
		return nil, err
	}

	var resp models.Single[models.Anime]
	if err := c.get(ctx, EndpointAnime, fmt.Sprintf("/anime/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetManga fetches /manga/{id}.
func (c *Client) GetManga(ctx context.Context, id int) (*models.Manga, error) {
	if err := guard.Positive("id", id); err != nil {
		return nil, err
	}

	var resp models.Single[models.Manga]
	if err := c.get(ctx, EndpointManga, fmt.Sprintf("/manga/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetAnimeCharacters fetches /anime/{id}/characters.
func (c *Client) GetAnimeCharacters(ctx context.Context, id int) ([]models.CharacterRole, error) {
	if err := guard.Positive("id", id); err != nil {
		return nil, err
	}

	var resp models.List[models.CharacterRole]
	if err := c.get(ctx, EndpointAnimeCharacters, fmt.Sprintf("/anime/%d/characters", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchAnime queries /anime.
func (c *Client) SearchAnime(ctx context.Context, q SearchQuery) (*models.Page[models.Anime], error) {
	if err := q.validate(animeFilters); err != nil {
		return nil, err
	}

	var resp models.Page[models.Anime]
	if err := c.get(ctx, EndpointSearchAnime, "/anime", q.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchManga queries /manga.
func (c *Client) SearchManga(ctx context.Context, q SearchQuery) (*models.Page[models.Manga], error) {
	if err := q.validate(mangaFilters); err != nil {
		return nil, err
	}

	var resp models.Page[models.Manga]
	if err := c.get(ctx, EndpointSearchManga, "/manga", q.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTopAnime fetches /top/anime?page={page}.
func (c *Client) GetTopAnime(ctx context.Context, page int) (*models.Page[models.Anime], error) {
	if err := guard.Positive("page", page); err != nil {
		return nil, err
	}

	var resp models.Page[models.Anime]
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, EndpointTopAnime, "/top/anime", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSchedules fetches /schedules for one day ("monday".."sunday", "other",
// "unknown") or, when day is empty, for the whole week.
func (c *Client) GetSchedules(ctx context.Context, day string, page int) (*models.Page[models.Anime], error) {
	checks := []error{guard.Positive("page", page)}
	if day != "" {
		checks = append(checks, guard.OneOf("day", day, config.ScheduleDays...))
	}
	if err := guard.First(checks...); err != nil {
		return nil, err
	}

	query := url.Values{"page": {strconv.Itoa(page)}}
	if day != "" {
		query.Set("filter", strings.ToLower(day))
	}

	var resp models.Page[models.Anime]
	if err := c.get(ctx, EndpointSchedules, "/schedules", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
