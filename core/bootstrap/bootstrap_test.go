package bootstrap

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/healthmode/core/config"
	coredatabase "github.com/m3rciful/healthmode/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutDatabase(t *testing.T) {
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			t.Fatal("connect must not be called")
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	if res.DB != nil {
		t.Fatal("expected nil DB")
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
}

func TestRunWithDatabase(t *testing.T) {
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectClose()

	var order []string
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		Database:   &coredatabase.Config{Name: "healthmode"},
		LoggerInit: noLogger,
		Migrate: func(cfg coredatabase.Config) error {
			order = append(order, "migrate:"+cfg.Name)
			return nil
		},
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			order = append(order, "connect")
			return sqlx.NewDb(raw, "postgres"), nil
		},
	})
	if err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	if len(order) != 2 || order[0] != "migrate:healthmode" || order[1] != "connect" {
		t.Fatalf("order = %v", order)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Fatal("nil config must fail")
	}

	boom := errors.New("boom")
	_, err := Run(Options{Config: &coreconfig.Config{}, LoggerInit: func(*coreconfig.Config) error { return boom }})
	if !errors.Is(err, boom) {
		t.Fatalf("logger failure err = %v", err)
	}

	_, err = Run(Options{
		Config:     &coreconfig.Config{},
		Database:   &coredatabase.Config{},
		LoggerInit: noLogger,
		Migrate:    func(coredatabase.Config) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("migrate failure err = %v", err)
	}
}
