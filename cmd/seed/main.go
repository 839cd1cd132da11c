package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"webshop/internal/auth"
	"webshop/internal/config"
	"webshop/internal/db"
	apperrors "webshop/internal/errors"
	"webshop/internal/logger"
	"webshop/internal/model"
	"webshop/internal/repository"
	"webshop/internal/service"
)

var seedUsers = []service.UserInput{
	{
		FirstName: "Barack",
		LastName:  "Obama",
		Email:     "barack.obama@euri.com",
		Role:      model.RoleUser,
		Password:  "Kcarab",
		Address:   &model.Address{Street: "Pennsylvania Avenue", Number: "1600", City: "Washington", Zip: "20500", Country: "USA"},
	},
	{
		FirstName: "Joe",
		LastName:  "Biden",
		Email:     "joe.biden@euri.com",
		Role:      model.RoleAdmin,
		Password:  "Eoj",
	},
}

func seedProducts() []model.Product {
	discount := decimal.RequireFromString("0.20")
	return []model.Product{
		{Name: "Apple", Description: "Green and crisp", Price: decimal.RequireFromString("0.99"), Category: "fruit", Stock: 120},
		{Name: "Banana", Description: "Ripe, from Ecuador", Price: decimal.RequireFromString("1.29"), Discount: &discount, Category: "fruit", Stock: 80},
		{Name: "Coffee", Description: "Whole beans, 1kg", Price: decimal.RequireFromString("14.50"), Category: "pantry", Stock: 25},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		slog.Error("init logger", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("seed completed")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	users := service.NewUserService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewTokenStore(gormDB), nil)

	for _, u := range seedUsers {
		if _, err := users.CreateUser(ctx, u); err != nil {
			if errors.Is(err, apperrors.ErrUserAlreadyExists) {
				log.Info("user already present", slog.String("email", u.Email))
				continue
			}
			return err
		}
		log.Info("seeded user", slog.String("email", u.Email), slog.String("role", string(u.Role)))
	}

	productRepo := repository.NewProductRepository(gormDB)
	existing, err := productRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("products already present, skipping", slog.Int("count", len(existing)))
		return nil
	}

	for _, p := range seedProducts() {
		product := p
		if err := productRepo.Create(ctx, &product); err != nil {
			return err
		}
	}
	log.Info("seeded products", slog.Int("count", len(seedProducts())))
	return nil
}
