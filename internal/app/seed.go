package app

import (
	"context"
	"errors"

	"lendhub/internal/domain"
)

// Seed loads the demo catalog and the two demo principals. Seeding is
// idempotent: records that already exist are left alone.
func (a *App) Seed(ctx context.Context) error {
	items := []domain.AddItemRequest{
		{ID: "B001", Title: "Wings of Fire", Author: "A.P.J. Abdul Kalam", Genre: "Autobiography"},
		{ID: "B002", Title: "The White Tiger", Author: "Aravind Adiga", Genre: "Fiction"},
		{ID: "B003", Title: "Malgudi Days", Author: "R.K. Narayan", Genre: "Short Stories"},
		{ID: "B004", Title: "The God of Small Things", Author: "Arundhati Roy", Genre: "Drama"},
		{ID: "B005", Title: "Train to Pakistan", Author: "Khushwant Singh", Genre: "Historical Fiction"},
	}
	for _, req := range items {
		if _, err := a.Catalog.Add(ctx, req); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return err
		}
	}

	principals := []domain.RegisterPrincipalRequest{
		{ID: "A001", Name: "Admin User", Role: domain.RoleAdmin, Secret: "admin123"},
		{ID: "S001", Name: "John Doe", Role: domain.RoleStudent, Secret: "student123"},
	}
	for _, req := range principals {
		if _, err := a.Directory.Register(ctx, req); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return err
		}
	}

	a.Logger.Info("demo data seeded", "items", len(items), "principals", len(principals))
	return nil
}
