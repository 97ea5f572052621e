// Command seed loads a small set of sample products for local development.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/persistence/postgres"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	repo := postgres.NewProductRepository(db)
	now := time.Now().UTC()

	samples := []entity.Product{
		{
			Brand:       "Seiko",
			SKU:         "SRPD55K1",
			Category:    "Dive",
			Description: "Automatic diver with 42.5mm stainless case",
			Inventory:   12,
			Price:       295,
			Metafields: entity.Metafields{
				CaseMaterial:    "Stainless Steel",
				DialColor:       "Black",
				WaterResistance: "100m",
				WarrantyPeriod:  "2 years",
				Movement:        "Automatic",
				Gender:          "Men",
				CaseSize:        "42.5mm",
			},
		},
		{
			Brand:       "Casio",
			SKU:         "A158WA-1",
			Category:    "Digital",
			Description: "Classic digital with stainless band",
			Inventory:   40,
			Price:       24.95,
			Metafields: entity.Metafields{
				CaseMaterial: "Resin",
				DialColor:    "Grey",
				Movement:     "Quartz",
				Gender:       "Unisex",
				CaseSize:     "33mm",
			},
		},
		{
			Brand:       "Tissot",
			SKU:         "T137.407.11.041.00",
			Category:    "Dress",
			Description: "PRX Powermatic 80 with blue waffle dial",
			Inventory:   0,
			Price:       725,
			Metafields: entity.Metafields{
				CaseMaterial:    "Stainless Steel",
				DialColor:       "Blue",
				WaterResistance: "100m",
				WarrantyPeriod:  "2 years",
				Movement:        "Automatic",
				Gender:          "Men",
				CaseSize:        "40mm",
			},
		},
		{
			Brand:       "Timex",
			SKU:         "TW2V21200",
			Category:    "Field",
			Description: "Expedition North field watch",
			Inventory:   8,
			Price:       189,
			Metafields: entity.Metafields{
				CaseMaterial:   "Stainless Steel",
				DialColor:      "Black",
				WarrantyPeriod: "1 year",
				Movement:       "Automatic",
				Gender:         "Men",
				CaseSize:       "41mm",
			},
		},
	}

	for i := range samples {
		p := samples[i]
		p.ID = uuid.NewString()
		p.CreatedAt = now.Add(time.Duration(i) * time.Second)
		p.UpdatedAt = p.CreatedAt
		if err := repo.Create(ctx, &p); err != nil {
			log.Printf("skip %s %s: %v", p.Brand, p.SKU, err)
			continue
		}
		fmt.Printf("seeded %s %s (%s)\n", p.Brand, p.SKU, p.ID)
	}
}
