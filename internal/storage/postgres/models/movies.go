package models

import (
	"context"
	"errors"

	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

// movieColumns is the read shape shared by Get and List: the movie row,
// the owner's username and the derived one-decimal average rating
// (NULL when the movie has no reviews).
const movieColumns = `
	m.id, m.title, m.director, m.release_date, m.description, m.image_url,
	m.user_id, m.created_at, m.updated_at,
	u.username AS created_by_username,
	(SELECT ROUND(AVG(r.rating), 1) FROM reviews r WHERE r.movie_id = m.id)::float8 AS average_rating`

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+movieColumns+` FROM movies m JOIN users u ON u.id = m.user_id WHERE m.id = $1`,
		id,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (title, director, release_date, description, image_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		movie.Title,
		movie.Director,
		movie.ReleaseDate,
		movie.Description,
		movie.ImageURL,
		movie.UserID,
	)
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Movie])
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (m *MovieModel) List(ctx context.Context, limit, offset int) ([]models.Movie, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER(), `+movieColumns+`
		FROM movies m JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at ASC, m.id ASC
		LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	type row struct {
		Count int
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[row])
	if err != nil {
		return nil, 0, err
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.Movie)
	}
	totalRecords := 0
	if len(outputRows) > 0 {
		totalRecords = outputRows[0].Count
	}
	return movies, totalRecords, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	// user_id is deliberately absent: ownership is immutable after creation.
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE movies SET title = $1, director = $2, release_date = $3, description = $4,
		image_url = $5, updated_at = now() WHERE id = $6 RETURNING *`,
		movie.Title,
		movie.Director,
		movie.ReleaseDate,
		movie.Description,
		movie.ImageURL,
		movie.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
