package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// explanationRepo implements ExplanationRepo on the explanations table.
type explanationRepo struct {
	drv *entsql.Driver
}

func (r *explanationRepo) Get(ctx context.Context, elementID, model string) (*Explanation, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("element_id", "model", "explanation", "mnemonic", "created_at").
		From(entsql.Table(tableExplanations)).
		Where(entsql.And(
			entsql.EQ("element_id", elementID),
			entsql.EQ("model", model),
		)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query explanation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var e Explanation
	if err := rows.Scan(&e.ElementID, &e.Model, &e.Explanation, &e.Mnemonic, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan explanation: %w", err)
	}
	return &e, nil
}

func (r *explanationRepo) Put(ctx context.Context, e *Explanation) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableExplanations).
		Columns("element_id", "model", "explanation", "mnemonic", "created_at").
		Values(e.ElementID, e.Model, e.Explanation, e.Mnemonic, created).
		OnConflict(
			entsql.ConflictColumns("element_id", "model"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save explanation: %w", err)
	}
	return nil
}

func (r *explanationRepo) Delete(ctx context.Context, elementIDs ...string) (int, error) {
	del := entsql.Dialect(dialect.SQLite).Delete(tableExplanations)
	if len(elementIDs) > 0 {
		ids := make([]any, len(elementIDs))
		for i, id := range elementIDs {
			ids[i] = id
		}
		del.Where(entsql.In("element_id", ids...))
	}
	query, args := del.Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete explanations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
