package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kitchenequip/internal/httpserver"
	"kitchenequip/internal/logger"
	"kitchenequip/internal/models"
	"kitchenequip/internal/store"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}

	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	if err := seedDefaultUsers(st, lg); err != nil {
		lg.Fatalw("seed failed", "error", err)
	}

	router := httpserver.NewRouter(st, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

// seedDefaultUsers creates the two bootstrap accounts on an empty database.
// Fixed credentials for operational convenience only; rotate them in any
// real deployment.
func seedDefaultUsers(st *store.Store, lg *zap.SugaredLogger) error {
	ctx := context.Background()
	users, err := st.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	superAdmin := models.User{
		UserType:  models.RoleSuperAdmin,
		FirstName: "Super",
		LastName:  "Admin",
		Email:     "admin@kitchenequipment.com",
		UserName:  "admin",
	}
	if err := st.Register(ctx, &superAdmin, "admin123"); err != nil {
		return err
	}

	admin := models.User{
		UserType:  models.RoleAdmin,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@kitchenequipment.com",
		UserName:  "john.doe",
	}
	if err := st.Register(ctx, &admin, "password123"); err != nil {
		return err
	}

	lg.Infow("seeded default users", "user_names", []string{"admin", "john.doe"})
	return nil
}
