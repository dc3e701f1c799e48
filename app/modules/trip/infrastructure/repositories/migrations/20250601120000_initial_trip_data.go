package migrations

import (
	"context"

	"github.com/uptrace/bun"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*tripdb.Trip)(nil),
			(*tripdb.Team)(nil),
			(*tripdb.Player)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*tripdb.Player)(nil),
			(*tripdb.Team)(nil),
			(*tripdb.Trip)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
