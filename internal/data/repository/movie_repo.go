package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository reads the local fallback catalog.
type MovieRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, movie *entity.Movie) error
}

// MovieFilter narrows FindAll. Zero values mean no filter.
type MovieFilter struct {
	PopularOnly bool
	Category    string
	Title       string // case-insensitive substring
	Limit       int
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, category, is_popular, image_url, description, rating, release_year`

func (r *movieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies WHERE TRUE`)

	args := []any{}
	argCount := 1

	if filter.PopularOnly {
		queryBuilder.WriteString(" AND is_popular")
	}
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, filter.Category)
		argCount++
	}
	if filter.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND title ILIKE '%%' || $%d || '%%'", argCount))
		args = append(args, filter.Title)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY rating DESC, id")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filter.Limit)
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Bool("popular_only", filter.PopularOnly),
			zap.String("category", filter.Category),
			zap.String("title", filter.Title),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Fallback movies found", zap.Int("count", len(movies)))
	return movies, nil
}

func (r *movieRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

func (r *movieRepository) Upsert(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (` + movieColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			is_popular = EXCLUDED.is_popular,
			image_url = EXCLUDED.image_url,
			description = EXCLUDED.description,
			rating = EXCLUDED.rating,
			release_year = EXCLUDED.release_year
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Category,
		movie.IsPopular,
		movie.ImageURL,
		movie.Description,
		movie.Rating,
		movie.ReleaseYear,
	)
	if err != nil {
		r.log.Error("Failed to upsert movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID),
		)
		return fmt.Errorf("upsert movie %s: %w", movie.ID, err)
	}
	return nil
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Category,
		&movie.IsPopular,
		&movie.ImageURL,
		&movie.Description,
		&movie.Rating,
		&movie.ReleaseYear,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
