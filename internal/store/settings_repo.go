package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/valenz/internal/settings"
)

// SettingsRepo implements settings.Repo on the item_settings table. Rows keep
// the display order in their position column.
type SettingsRepo struct {
	drv *entsql.Driver
}

var _ settings.Repo = (*SettingsRepo)(nil)

func (r *SettingsRepo) Load(ctx context.Context) ([]settings.ItemSetting, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "enabled", "times", "right_count", "wrong_count").
		From(entsql.Table(tableItemSettings)).
		OrderBy("position", "id").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query item settings: %w", err)
	}
	defer rows.Close()

	var items []settings.ItemSetting
	for rows.Next() {
		var it settings.ItemSetting
		if err := rows.Scan(&it.ID, &it.Enabled, &it.Stats.Times, &it.Stats.Right, &it.Stats.Wrong); err != nil {
			return nil, fmt.Errorf("scan item setting: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item settings: %w", err)
	}
	return items, nil
}

// Save replaces the stored settings in one transaction.
func (r *SettingsRepo) Save(ctx context.Context, items []settings.ItemSetting) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Delete(tableItemSettings).Query()
	if err = tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear item settings: %w", err)
	}

	if len(items) > 0 {
		now := time.Now()
		insert := b.Insert(tableItemSettings).
			Columns("id", "position", "enabled", "times", "right_count", "wrong_count", "updated_at")
		for i, it := range items {
			insert.Values(it.ID, i, it.Enabled, it.Stats.Times, it.Stats.Right, it.Stats.Wrong, now)
		}
		query, args = insert.Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert item settings: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit item settings: %w", err)
	}
	return nil
}
