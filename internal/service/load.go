package service

import (
	"context"
	"fmt"

	"barangay/internal/ledger"
	"barangay/internal/model"
	"barangay/internal/repository"
)

// LoadLedger fills led from the repository. An empty repository is seeded with
// fallback so the demo data survives restarts; without a repository only the
// fallback is loaded.
func LoadLedger(ctx context.Context, led *ledger.Ledger, repo repository.RequestRepository, fallback []model.DocumentRequest) (int, error) {
	if repo == nil {
		if err := led.Load(fallback...); err != nil {
			return 0, fmt.Errorf("load seed requests: %w", err)
		}
		return len(fallback), nil
	}

	stored, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored requests: %w", err)
	}
	if len(stored) > 0 {
		if err := led.Load(stored...); err != nil {
			return 0, fmt.Errorf("load stored requests: %w", err)
		}
		return len(stored), nil
	}

	if err := led.Load(fallback...); err != nil {
		return 0, fmt.Errorf("load seed requests: %w", err)
	}
	for i := range fallback {
		if err := repo.Save(ctx, &fallback[i]); err != nil {
			return 0, fmt.Errorf("persist seed request %s: %w", fallback[i].ID, err)
		}
	}
	return len(fallback), nil
}
