package migrations

import (
	"context"

	"github.com/uptrace/bun"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*rounddb.Round)(nil),
			(*rounddb.TeeHole)(nil),
			(*rounddb.Match)(nil),
			(*rounddb.HoleScore)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}
		if _, err := db.NewCreateIndex().
			Model((*rounddb.HoleScore)(nil)).
			Index("hole_scores_round_player_hole_key").
			Unique().
			Column("round_id", "player_id", "hole_number").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*rounddb.TeeHole)(nil)).
			Index("tee_holes_round_hole_key").
			Unique().
			Column("round_id", "hole_number").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*rounddb.HoleScore)(nil),
			(*rounddb.Match)(nil),
			(*rounddb.TeeHole)(nil),
			(*rounddb.Round)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
