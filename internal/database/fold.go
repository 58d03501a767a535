// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"database/sql"
	"fmt"

	"github.com/ladyCringe/filmorate/internal/models"
)

// filmJoinColumns is the canonical projection for every film listing
// query. All film queries share this shape so a single scan-and-fold
// path can assemble complete entities in one round trip.
const filmJoinColumns = `f.id, f.name, f.description, f.release_date, f.duration,
		mr.id, mr.name,
		d.id, d.name,
		fg.genre_id, g.name,
		l.user_id`

// filmJoinTables fans each film out across its genres, directors and
// likes. Every join is LEFT so films without collections still produce
// at least one row.
const filmJoinTables = `LEFT JOIN mpa_ratings mr ON mr.id = f.mpa_id
		LEFT JOIN film_director fd ON fd.film_id = f.id
		LEFT JOIN directors d ON d.id = fd.director_id
		LEFT JOIN film_genres fg ON fg.film_id = f.id
		LEFT JOIN genres g ON g.id = fg.genre_id
		LEFT JOIN likes l ON l.film_id = f.id`

// FilmRow is one flat row from the film fan-out join. Every column past
// the film scalars is nullable because the joins are LEFT: a film with
// two genres and no directors contributes rows whose director columns
// are null.
type FilmRow struct {
	FilmID       sql.NullInt32
	Name         sql.NullString
	Description  sql.NullString
	ReleaseDate  sql.NullTime
	Duration     sql.NullInt32
	MpaID        sql.NullInt32
	MpaName      sql.NullString
	DirectorID   sql.NullInt64
	DirectorName sql.NullString
	GenreID      sql.NullInt32
	GenreName    sql.NullString
	LikeUserID   sql.NullInt32
}

// filmFold accumulates flat join rows into complete film entities.
// Films keep first-appearance order, which the SQL ORDER BY controls.
// Reference entities (genres, directors, mpa ratings) are cached per
// fold so repeated rows reuse one instance, and per-film seen sets
// deduplicate the cross-product repetition the fan-out joins produce:
// a film with 2 genres and 3 likes yields 6 rows, each repeating every
// reference column.
type filmFold struct {
	films []*models.Film
	byID  map[int]*models.Film

	mpaCache      map[int]*models.MpaRating
	genreCache    map[int]models.Genre
	directorCache map[int64]models.Director

	genreSeen    map[int]map[int]struct{}
	directorSeen map[int]map[int64]struct{}
	likeSeen     map[int]map[int]struct{}
}

func newFilmFold() *filmFold {
	return &filmFold{
		byID:          make(map[int]*models.Film),
		mpaCache:      make(map[int]*models.MpaRating),
		genreCache:    make(map[int]models.Genre),
		directorCache: make(map[int64]models.Director),
		genreSeen:     make(map[int]map[int]struct{}),
		directorSeen:  make(map[int]map[int64]struct{}),
		likeSeen:      make(map[int]map[int]struct{}),
	}
}

// add folds one row into the accumulated state. The first error aborts
// the whole fold; partial output is never returned to callers.
func (ff *filmFold) add(row FilmRow) error {
	if !row.FilmID.Valid {
		return fmt.Errorf("%w: null film id", ErrDataShape)
	}
	filmID := int(row.FilmID.Int32)

	film, ok := ff.byID[filmID]
	if !ok {
		film = &models.Film{
			ID:          filmID,
			Name:        row.Name.String,
			Description: row.Description.String,
			Duration:    int(row.Duration.Int32),
			Genres:      []models.Genre{},
			Directors:   []models.Director{},
			Likes:       []int{},
		}
		if row.ReleaseDate.Valid {
			film.ReleaseDate = models.Date{Time: row.ReleaseDate.Time}
		}
		if row.MpaID.Valid {
			mpa, err := ff.mpaRating(row)
			if err != nil {
				return err
			}
			film.Mpa = mpa
		}
		ff.byID[filmID] = film
		ff.films = append(ff.films, film)
		ff.genreSeen[filmID] = make(map[int]struct{})
		ff.directorSeen[filmID] = make(map[int64]struct{})
		ff.likeSeen[filmID] = make(map[int]struct{})
	}

	if row.DirectorID.Valid {
		if _, seen := ff.directorSeen[filmID][row.DirectorID.Int64]; !seen {
			director, err := ff.director(row)
			if err != nil {
				return err
			}
			film.Directors = append(film.Directors, director)
			ff.directorSeen[filmID][row.DirectorID.Int64] = struct{}{}
		}
	}

	if row.GenreID.Valid {
		genreID := int(row.GenreID.Int32)
		if _, seen := ff.genreSeen[filmID][genreID]; !seen {
			genre, err := ff.genre(row)
			if err != nil {
				return err
			}
			film.Genres = append(film.Genres, genre)
			ff.genreSeen[filmID][genreID] = struct{}{}
		}
	}

	if row.LikeUserID.Valid {
		userID := int(row.LikeUserID.Int32)
		if _, seen := ff.likeSeen[filmID][userID]; !seen {
			film.Likes = append(film.Likes, userID)
			ff.likeSeen[filmID][userID] = struct{}{}
		}
	}

	return nil
}

func (ff *filmFold) mpaRating(row FilmRow) (*models.MpaRating, error) {
	id := int(row.MpaID.Int32)
	if mpa, ok := ff.mpaCache[id]; ok {
		return mpa, nil
	}
	if !row.MpaName.Valid {
		return nil, fmt.Errorf("%w: mpa rating %d has null name", ErrDataShape, id)
	}
	mpa := &models.MpaRating{ID: id, Name: row.MpaName.String}
	ff.mpaCache[id] = mpa
	return mpa, nil
}

func (ff *filmFold) genre(row FilmRow) (models.Genre, error) {
	id := int(row.GenreID.Int32)
	if genre, ok := ff.genreCache[id]; ok {
		return genre, nil
	}
	if !row.GenreName.Valid {
		return models.Genre{}, fmt.Errorf("%w: genre %d has null name", ErrDataShape, id)
	}
	genre := models.Genre{ID: id, Name: row.GenreName.String}
	ff.genreCache[id] = genre
	return genre, nil
}

func (ff *filmFold) director(row FilmRow) (models.Director, error) {
	id := row.DirectorID.Int64
	if director, ok := ff.directorCache[id]; ok {
		return director, nil
	}
	if !row.DirectorName.Valid {
		return models.Director{}, fmt.Errorf("%w: director %d has null name", ErrDataShape, id)
	}
	director := models.Director{ID: id, Name: row.DirectorName.String}
	ff.directorCache[id] = director
	return director, nil
}

func (ff *filmFold) result() []*models.Film {
	if ff.films == nil {
		return []*models.Film{}
	}
	return ff.films
}

// FoldFilmRows assembles complete film entities from flat fan-out join
// rows. Output order follows first appearance in the input. Any shape
// violation fails the whole fold.
func FoldFilmRows(rows []FilmRow) ([]*models.Film, error) {
	ff := newFilmFold()
	for i, row := range rows {
		if err := ff.add(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return ff.result(), nil
}

// scanFilmRows drains a result set whose projection is filmJoinColumns,
// folding as it scans so large fan-outs never buffer twice.
func scanFilmRows(rows *sql.Rows) ([]*models.Film, error) {
	ff := newFilmFold()
	n := 0
	for rows.Next() {
		var row FilmRow
		if err := rows.Scan(
			&row.FilmID, &row.Name, &row.Description, &row.ReleaseDate, &row.Duration,
			&row.MpaID, &row.MpaName,
			&row.DirectorID, &row.DirectorName,
			&row.GenreID, &row.GenreName,
			&row.LikeUserID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan film row: %w", err)
		}
		if err := ff.add(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("film row iteration failed: %w", err)
	}
	return ff.result(), nil
}
