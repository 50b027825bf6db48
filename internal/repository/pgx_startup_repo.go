package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/yakoovad/startup-roster/internal/db"
)

type Startup struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	TeamSize int    `db:"team_size"`
}

type StartupRepository interface {
	Create(ctx context.Context, startup *Startup) error
	Get(ctx context.Context, id string) (*Startup, error)
	UpdateTeamSize(ctx context.Context, id string, size int) error
}

type pgxStartupRepository struct {
	pool *pgxpool.Pool
}

func NewPgxStartupRepository(pool *pgxpool.Pool) StartupRepository {
	return &pgxStartupRepository{pool: pool}
}

// Create provisions a startup row; used for seeding fixtures, not by the roster flow.
func (p *pgxStartupRepository) Create(ctx context.Context, startup *Startup) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("startups", "name", "team_size"),
		im.Values(psql.Arg(startup.Name), psql.Arg(startup.TeamSize)),
		im.Returning("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	return translate(e.QueryRow(ctx, sql, args...).Scan(&startup.ID))
}

func (p *pgxStartupRepository) Get(ctx context.Context, id string) (*Startup, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "name", "team_size"),
		sm.From("startups"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	s := &Startup{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.TeamSize); err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (p *pgxStartupRepository) UpdateTeamSize(ctx context.Context, id string, size int) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("startups"),
		um.SetCol("team_size").ToArg(size),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
