package repository

import (
	"context"
	"testing"

	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
)

func TestOpen(t *testing.T) {
	repo, err := Open(&config.Config{DatabaseURL: "memory:"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.(*memory.MemoryRepository); !ok {
		t.Errorf("memory: opened %T", repo)
	}

	repo, err = Open(&config.Config{DatabaseURL: "file:open_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	if _, ok := repo.(*sqlite.SQLiteRepository); !ok {
		t.Errorf("file: opened %T", repo)
	}
	if _, err := repo.CountVisits(context.Background()); err != nil {
		t.Errorf("CountVisits on fresh sqlite: %v", err)
	}
}
