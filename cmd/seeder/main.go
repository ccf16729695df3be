// Command seeder populates the catalog with a small demo dataset:
// reference entities (categories, units, brands), a few cargo with
// specification models, and an opening inbound movement that books their
// initial stock through the ledger. It is intended for local development
// and demo environments, not production.
//
// Flags:
//
//	--dry-run   log what would be created without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/adapter/postgres"
	cargorepo "cargoledger/internal/adapter/postgres/cargo"
	modelrepo "cargoledger/internal/adapter/postgres/model"
	recordrepo "cargoledger/internal/adapter/postgres/record"
	"cargoledger/internal/adapter/postgres/refdata"
	"cargoledger/internal/app"
	"cargoledger/internal/config"
	"cargoledger/internal/domain"
	"cargoledger/internal/service/catalog"
	"cargoledger/internal/service/movement"
	"cargoledger/internal/speccodec"
)

type demoModel struct {
	name string
	spec []speccodec.Pair
	qty  int64
}

type demoCargo struct {
	name     string
	category string
	unit     string
	brand    string
	price    string
	models   []demoModel
}

var demoCatalog = []demoCargo{
	{
		name: "Hex bolt", category: "Fasteners", unit: "box", brand: "BoltWorks", price: "12.50",
		models: []demoModel{
			{name: "M8x40", spec: []speccodec.Pair{{Key: "thread", Value: "M8"}, {Key: "length", Value: int64(40)}}, qty: 120},
			{name: "M8x60", spec: []speccodec.Pair{{Key: "thread", Value: "M8"}, {Key: "length", Value: int64(60)}}, qty: 80},
		},
	},
	{
		name: "Power cable", category: "Electrical", unit: "m", brand: "VoltLine", price: "3.20",
		models: []demoModel{
			{name: "3x1.5", spec: []speccodec.Pair{{Key: "cores", Value: int64(3)}, {Key: "section", Value: "1.5"}}, qty: 500},
			{name: "3x2.5", spec: []speccodec.Pair{{Key: "cores", Value: int64(3)}, {Key: "section", Value: "2.5"}}, qty: 300},
		},
	},
	{
		name: "Work gloves", category: "Consumables", unit: "pair", brand: "",
		models: []demoModel{
			{name: "L", spec: []speccodec.Pair{{Key: "size", Value: "L"}}, qty: 40},
		},
	},
}

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "log what would be created without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *dryRunFlag {
		for _, c := range demoCatalog {
			logger.Info("would create cargo",
				slog.String("name", c.name),
				slog.Int("models", len(c.models)),
			)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	refs := map[domain.RefKind]catalog.RefRepo{
		domain.RefKindCategory: refdata.New(pool, domain.RefKindCategory),
		domain.RefKindUnit:     refdata.New(pool, domain.RefKindUnit),
		domain.RefKindBrand:    refdata.New(pool, domain.RefKindBrand),
	}

	codec := speccodec.New(cfg.Ledger.SpecMaxDepth)
	catalogSvc := catalog.NewService(logger, cargorepo.New(pool), modelrepo.New(pool), refs, codec)
	movementSvc := movement.NewService(logger, modelrepo.New(pool), recordrepo.New(pool), txm)

	if err := seed(ctx, logger, catalogSvc, movementSvc); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed successfully")
}

func seed(ctx context.Context, logger *slog.Logger, cat *catalog.Service, mov *movement.Service) error {
	refIDs := map[domain.RefKind]map[string]primitive.ObjectID{
		domain.RefKindCategory: {},
		domain.RefKindUnit:     {},
		domain.RefKindBrand:    {},
	}

	createRef := func(kind domain.RefKind, name string) error {
		if name == "" {
			return nil
		}
		if _, ok := refIDs[kind][name]; ok {
			return nil
		}
		entity, err := cat.CreateRef(ctx, kind, catalog.CreateRefInput{Name: name})
		if err != nil {
			return err
		}
		refIDs[kind][name] = entity.ID
		return nil
	}

	// Opening stock is booked through the ledger, not written directly:
	// models are created empty and filled by one committed inbound movement.
	opening := movement.NewDraft()

	for _, c := range demoCatalog {
		if err := createRef(domain.RefKindCategory, c.category); err != nil {
			return err
		}
		if err := createRef(domain.RefKindUnit, c.unit); err != nil {
			return err
		}
		if err := createRef(domain.RefKindBrand, c.brand); err != nil {
			return err
		}

		input := catalog.CreateCargoInput{Name: c.name}
		if id, ok := refIDs[domain.RefKindCategory][c.category]; ok {
			input.CategoryID = &id
		}
		if id, ok := refIDs[domain.RefKindUnit][c.unit]; ok {
			input.UnitID = &id
		}
		if id, ok := refIDs[domain.RefKindBrand][c.brand]; ok {
			input.BrandID = &id
		}
		if c.price != "" {
			price, err := decimal.NewFromString(c.price)
			if err != nil {
				return err
			}
			input.Price = &price
		}

		created, err := cat.CreateCargo(ctx, input)
		if err != nil {
			return err
		}
		logger.Info("cargo created", slog.String("name", created.Name), slog.String("id", created.ID.Hex()))

		for _, m := range c.models {
			model, err := cat.CreateModel(ctx, catalog.CreateModelInput{
				CargoID: created.ID,
				Name:    m.name,
				Spec:    m.spec,
			})
			if err != nil {
				return err
			}
			qty := strconv.FormatInt(m.qty, 10)
			if err := opening.AddLine(created.ID.Hex(), created.Name, c.unit, model.ID.Hex(), model.Name, qty); err != nil {
				return err
			}
		}
	}

	record, err := mov.Commit(ctx, domain.RecordTypeInbound, opening, true)
	if err != nil {
		return err
	}
	logger.Info("opening stock committed", slog.String("record_id", record.ID.Hex()))

	return nil
}
