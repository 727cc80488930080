package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"trip_planner/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) SavePlan(ctx context.Context, p domain.StoredPlan) error {
	req, err := json.Marshal(p.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = r.db.ExecContext(ctx, upsertPlanSQL,
		p.ID,
		p.Plan.City,
		p.Plan.StartDate,
		p.Plan.EndDate,
		p.Request.TravelDays,
		string(req),
		string(plan),
		created.UTC(),
	)
	return err
}

func (r *Repo) GetPlan(ctx context.Context, id string) (domain.StoredPlan, error) {
	var (
		out           domain.StoredPlan
		reqRaw, plRaw []byte
	)
	err := r.db.QueryRowContext(ctx, getPlanSQL, id).Scan(&out.ID, &reqRaw, &plRaw, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredPlan{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.StoredPlan{}, err
	}
	if err := json.Unmarshal(reqRaw, &out.Request); err != nil {
		return domain.StoredPlan{}, fmt.Errorf("decode stored request %s: %w", id, err)
	}
	if err := json.Unmarshal(plRaw, &out.Plan); err != nil {
		return domain.StoredPlan{}, fmt.Errorf("decode stored plan %s: %w", id, err)
	}
	return out, nil
}

func (r *Repo) ListPlans(ctx context.Context, q domain.PageQuery) (domain.PlansPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var (
		where []string
		args  []any
	)
	if q.City != nil && *q.City != "" {
		where = append(where, "city = ?")
		args = append(args, *q.City)
	}
	if q.Cursor != nil && *q.Cursor != "" {
		seq, err := strconv.ParseInt(*q.Cursor, 10, 64)
		if err != nil {
			return domain.PlansPage{}, fmt.Errorf("%w: %q", domain.ErrInvalidCursor, *q.Cursor)
		}
		where = append(where, "seq < ?")
		args = append(args, seq)
	}
	query := listPlansPrefix
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ")
	}
	query += listPlansSuffix
	// one extra row tells us whether there is a next page
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PlansPage{}, err
	}
	defer rows.Close()

	var (
		out  []domain.PlanSummary
		seqs []int64
	)
	for rows.Next() {
		var (
			s   domain.PlanSummary
			seq int64
		)
		if err := rows.Scan(&seq, &s.ID, &s.City, &s.StartDate, &s.EndDate, &s.TravelDays, &s.CreatedAt); err != nil {
			return domain.PlansPage{}, err
		}
		out = append(out, s)
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return domain.PlansPage{}, err
	}

	page := domain.PlansPage{Items: out}
	if len(out) > limit {
		page.Items = out[:limit]
		next := strconv.FormatInt(seqs[limit-1], 10)
		page.NextCursor = &next
	}
	return page, nil
}
