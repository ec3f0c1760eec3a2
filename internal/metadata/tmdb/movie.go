package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strconv"
)

// MovieDetails holds the subset of TMDB movie fields the dashboard
// uses.
type MovieDetails struct {
	ID          int64
	Title       string
	ReleaseDate string
	Runtime     int
	Genres      []string
	Countries   []string // ISO 3166-1 alpha-2 codes
}

// Credits holds the cast and crew of one movie.
type Credits struct {
	Cast []CastCredit
	Crew []CrewCredit
}

// CastCredit is one credited performance. Department is the member's
// known-for department ("Acting", "Directing", ...).
type CastCredit struct {
	Name        string
	Character   string
	Department  string
	ProfilePath string
}

// CrewCredit is one crew assignment.
type CrewCredit struct {
	Name string
	Job  string
}

// Details retrieves movie details by TMDB id.
func (c *Client) Details(ctx context.Context, id int64) (*MovieDetails, error) {
	body, err := c.doRequest(ctx, "/movie/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, wrapMovieError("details", id, err)
	}

	var raw rawMovieDetails
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapMovieError("details", id, fmt.Errorf("parse response: %w", err))
	}

	details := &MovieDetails{
		ID:          raw.ID,
		Title:       raw.Title,
		ReleaseDate: raw.ReleaseDate,
		Runtime:     raw.Runtime,
	}
	for _, g := range raw.Genres {
		details.Genres = append(details.Genres, g.Name)
	}
	for _, pc := range raw.ProductionCountries {
		details.Countries = append(details.Countries, pc.ISO)
	}
	return details, nil
}

// MovieCredits retrieves the cast and crew by TMDB id.
func (c *Client) MovieCredits(ctx context.Context, id int64) (*Credits, error) {
	body, err := c.doRequest(ctx, "/movie/"+strconv.FormatInt(id, 10)+"/credits", nil)
	if err != nil {
		return nil, wrapMovieError("credits", id, err)
	}

	var raw rawCredits
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapMovieError("credits", id, fmt.Errorf("parse response: %w", err))
	}

	credits := &Credits{}
	for _, m := range raw.Cast {
		credits.Cast = append(credits.Cast, CastCredit{
			Name:        m.Name,
			Character:   m.Character,
			Department:  m.KnownForDepartment,
			ProfilePath: m.ProfilePath,
		})
	}
	for _, m := range raw.Crew {
		credits.Crew = append(credits.Crew, CrewCredit{
			Name: m.Name,
			Job:  m.Job,
		})
	}
	return credits, nil
}

// Director returns the name of the first crew member credited as
// Director, or the empty string.
func (cr *Credits) Director() string {
	for _, m := range cr.Crew {
		if m.Job == "Director" {
			return m.Name
		}
	}
	return ""
}
