package datastore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDataStore writes content type records straight into the CMS tables.
type PostgresDataStore struct {
	cp *pgxpool.Pool // Connection pool to the PostgreSQL database
}

// Taxonomy returns the store for one of the reference content types.
func (r *PostgresDataStore) Taxonomy(kind Kind) *TaxonomyStore {
	return &TaxonomyStore{cp: r.cp, table: kind.Plural()}
}

// Games returns the store for game records.
func (r *PostgresDataStore) Games() *GameStore {
	return &GameStore{cp: r.cp}
}

// TaxonomyStore reads and creates rows of a name/slug table.
type TaxonomyStore struct {
	cp    *pgxpool.Pool
	table string
}

// Find returns every row whose name matches exactly.
func (s *TaxonomyStore) Find(ctx context.Context, name string) ([]Entity, error) {
	return findByName(ctx, s.cp, s.table, name)
}

// Create inserts a row and returns it with its id.
func (s *TaxonomyStore) Create(ctx context.Context, name, slug string) (Entity, error) {
	c, err := s.cp.Acquire(ctx)
	if err != nil {
		return Entity{}, fmt.Errorf("acquiring connection from pool: %w", err)
	}
	defer c.Release()

	var e Entity
	row := c.QueryRow(ctx,
		"INSERT INTO "+s.table+" (name, slug) VALUES ($1, $2) RETURNING id, name, slug;", name, slug,
	)
	if err := row.Scan(&e.Id, &e.Name, &e.Slug); err != nil {
		return Entity{}, fmt.Errorf("inserting into %s: %w", s.table, err)
	}
	return e, nil
}

// GameStore reads and creates game rows together with their reference links.
type GameStore struct {
	cp *pgxpool.Pool
}

func (s *GameStore) Find(ctx context.Context, name string) ([]Entity, error) {
	return findByName(ctx, s.cp, KindGame.Plural(), name)
}

// Create inserts the game and its category, platform and developer links in
// a single transaction.
func (s *GameStore) Create(ctx context.Context, game Game) (Entity, error) {
	tx, err := s.cp.Begin(ctx)
	if err != nil {
		return Entity{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var publisherId *int64
	if game.Publisher != nil {
		publisherId = &game.Publisher.Id
	}

	var e Entity
	row := tx.QueryRow(ctx, `
		INSERT INTO games (name, slug, price, release_date, short_description, description, rating, publisher_id)
		VALUES ($1, $2, $3, NULLIF($4, '')::timestamptz, $5, $6, NULLIF($7, ''), $8)
		RETURNING id, name, slug;`,
		game.Name, game.Slug, game.Price.String(), game.ReleaseDate,
		game.ShortDescription, game.Description, game.Rating, publisherId,
	)
	if err := row.Scan(&e.Id, &e.Name, &e.Slug); err != nil {
		return Entity{}, fmt.Errorf("inserting game %q: %w", game.Name, err)
	}

	batch := &pgx.Batch{}
	queueLinks(batch, "games_categories", "category_id", e.Id, game.Categories)
	queueLinks(batch, "games_platforms", "platform_id", e.Id, game.Platforms)
	queueLinks(batch, "games_developers", "developer_id", e.Id, game.Developers)

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return Entity{}, fmt.Errorf("linking references for game %q: %w", game.Name, err)
			}
		}
		if err := br.Close(); err != nil {
			return Entity{}, fmt.Errorf("closing batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Entity{}, fmt.Errorf("commit tx: %w", err)
	}
	return e, nil
}

func queueLinks(batch *pgx.Batch, table, column string, gameId int64, refs []Entity) {
	sql := "INSERT INTO " + table + " (game_id, " + column + ", position) VALUES ($1, $2, $3)"
	for i, ref := range refs {
		batch.Queue(sql, gameId, ref.Id, i)
	}
}

func findByName(ctx context.Context, cp *pgxpool.Pool, table, name string) ([]Entity, error) {
	rows, err := cp.Query(ctx, "SELECT id, name, slug FROM "+table+" WHERE name=$1 ORDER BY id;", name)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Entity])
	if err != nil {
		return nil, fmt.Errorf("scanning %s rows: %w", table, err)
	}
	return entities, nil
}
