package models

import (
	"context"
	"errors"

	"cinescope/proj/internal/domain/models"
	"cinescope/proj/internal/storage"
	"cinescope/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewModel struct {
	DB *pgxpool.Pool
}

// Insert is a single constrained insert: the UNIQUE (movie_id, user_id)
// index is the authoritative guard against duplicate reviews, so there
// is no prior existence check to race against.
func (m *ReviewModel) Insert(ctx context.Context, movieID, userID int64, rating int32, comment string) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO reviews (movie_id, user_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING *",
		movieID,
		userID,
		rating,
		comment,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Review])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT r.*, u.username FROM reviews r JOIN users u ON u.id = r.user_id WHERE r.id = $1`,
		id,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) GetAllForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT r.*, u.username FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1 ORDER BY r.created_at DESC, r.id DESC`,
		movieID,
	)
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3 RETURNING *",
		review.Rating,
		review.Comment,
		review.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
