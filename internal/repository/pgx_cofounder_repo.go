package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/yakoovad/startup-roster/internal/db"
)

type Cofounder struct {
	ID        string    `db:"id"`
	StartupID string    `db:"startup_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	TeamLead  bool      `db:"team_lead"`
	CreatedAt time.Time `db:"created_at"`
}

// CofounderRepository stores team members. The team lead is a member (counted and
// email-unique like everyone else) but is never returned by Get or ListByStartup.
type CofounderRepository interface {
	Create(ctx context.Context, cofounder *Cofounder) error
	Get(ctx context.Context, startupID, id string) (*Cofounder, error)
	ListByStartup(ctx context.Context, startupID string) ([]*Cofounder, error)
	CountByStartup(ctx context.Context, startupID string) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

var cofounderColumns = []any{"id", "startup_id", "name", "email", "team_lead", "created_at"}

type pgxCofounderRepository struct {
	pool *pgxpool.Pool
}

func NewPgxCofounderRepository(pool *pgxpool.Pool) CofounderRepository {
	return &pgxCofounderRepository{pool: pool}
}

func scanCofounder(row pgx.Row) (*Cofounder, error) {
	c := &Cofounder{}
	if err := row.Scan(&c.ID, &c.StartupID, &c.Name, &c.Email, &c.TeamLead, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts the cofounder, assigning a new id when none is set.
func (p *pgxCofounderRepository) Create(ctx context.Context, cofounder *Cofounder) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	if cofounder.ID == "" {
		cofounder.ID = uuid.NewString()
	}

	q := psql.Insert(
		im.Into("cofounders", "id", "startup_id", "name", "email", "team_lead"),
		im.Values(
			psql.Arg(cofounder.ID),
			psql.Arg(cofounder.StartupID),
			psql.Arg(cofounder.Name),
			psql.Arg(cofounder.Email),
			psql.Arg(cofounder.TeamLead),
		),
		im.Returning("created_at"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	return translate(e.QueryRow(ctx, sql, args...).Scan(&cofounder.CreatedAt))
}

func (p *pgxCofounderRepository) Get(ctx context.Context, startupID, id string) (*Cofounder, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(cofounderColumns...),
		sm.From("cofounders"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id)).
			And(psql.Quote("startup_id").EQ(psql.Arg(startupID))).
			And(psql.Quote("team_lead").EQ(psql.Arg(false)))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	c, err := scanCofounder(e.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (p *pgxCofounderRepository) ListByStartup(ctx context.Context, startupID string) ([]*Cofounder, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(cofounderColumns...),
		sm.From("cofounders"),
		sm.Where(psql.Quote("startup_id").EQ(psql.Arg(startupID)).
			And(psql.Quote("team_lead").EQ(psql.Arg(false)))),
		sm.OrderBy("created_at"),
		sm.OrderBy("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	cofounders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Cofounder, error) {
		return scanCofounder(row)
	})
	if err != nil {
		return nil, translate(err)
	}

	return cofounders, nil
}

// CountByStartup counts every member, the team lead included.
func (p *pgxCofounderRepository) CountByStartup(ctx context.Context, startupID string) (int, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From("cofounders"),
		sm.Where(psql.Quote("startup_id").EQ(psql.Arg(startupID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err = e.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// ExistsByEmail looks across every startup.
func (p *pgxCofounderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("1"),
		sm.From("cofounders"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
		sm.Limit(1),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return false, err
	}

	var one int
	err = e.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *pgxCofounderRepository) UpdateName(ctx context.Context, id, name string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("cofounders"),
		um.SetCol("name").ToArg(name),
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

func (p *pgxCofounderRepository) Delete(ctx context.Context, id string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("cofounders"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
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
