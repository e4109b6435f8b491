package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// seedCategory pairs a category with the products seeded under it.
type seedCategory struct {
	name        string
	description string
	products    []seedProduct
}

type seedProduct struct {
	name        string
	description string
	price       float64
	imageURL    string
	stock       int
}

var demoCatalog = []seedCategory{
	{
		name:        "Tools",
		description: "Hand and power tools",
		products: []seedProduct{
			{"Claw Hammer", "16oz steel claw hammer with fiberglass handle", 14.99, "https://images.example.com/products/claw-hammer.jpg", 42},
			{"Cordless Drill", "18V cordless drill with two batteries", 89.00, "https://images.example.com/products/cordless-drill.jpg", 7},
			{"Socket Set", "40-piece metric socket set", 34.50, "https://images.example.com/products/socket-set.jpg", 0},
		},
	},
	{
		name:        "Garden",
		description: "Outdoor and gardening supplies",
		products: []seedProduct{
			{"Pruning Shears", "Bypass pruning shears, hardened steel", 18.75, "https://images.example.com/products/pruning-shears.jpg", 25},
			{"Watering Can", "5L galvanized watering can", 12.00, "https://images.example.com/products/watering-can.jpg", 3},
		},
	},
	{
		name:        "Paint",
		description: "Paints, brushes and finishing",
		products: []seedProduct{
			{"Interior Paint", "Matte white interior paint, 2.5L", 24.99, "https://images.example.com/products/interior-paint.jpg", 18},
			{"Brush Set", "5-piece synthetic brush set", 9.99, "https://images.example.com/products/brush-set.jpg", 60},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	ctx := context.Background()

	created, updated, err := seedCatalog(ctx, categoryRepo, productRepo)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New records created: %d", created)
	log.Printf("  - Existing records updated: %d", updated)
}

// seedCatalog upserts the demo catalog: categories first, then their
// products, matched by name.
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, products repository.ProductRepository) (created, updated int, err error) {
	existingProducts, err := products.List(ctx, repository.ProductFilter{
		MinPrice: service.DefaultMinPrice,
		MaxPrice: service.DefaultMaxPrice,
	})
	if err != nil {
		return created, updated, err
	}
	byName := make(map[string]*model.Product, len(existingProducts))
	for i := range existingProducts {
		byName[existingProducts[i].Name] = &existingProducts[i]
	}

	for _, sc := range demoCatalog {
		exists, err := categories.ExistsWithName(ctx, sc.name, uuid.Nil)
		if err != nil {
			return created, updated, err
		}
		if !exists {
			if err := categories.Create(ctx, &model.Category{Name: sc.name, Description: sc.description}); err != nil {
				return created, updated, err
			}
			created++
		}

		for _, sp := range sc.products {
			if existing, ok := byName[sp.name]; ok {
				existing.Description = sp.description
				existing.Price = sp.price
				existing.Category = sc.name
				existing.ImageURL = sp.imageURL
				existing.Stock = sp.stock
				if err := products.Update(ctx, existing); err != nil {
					return created, updated, err
				}
				updated++
				continue
			}
			product := &model.Product{
				Name:        sp.name,
				Description: sp.description,
				Price:       sp.price,
				Category:    sc.name,
				ImageURL:    sp.imageURL,
				Stock:       sp.stock,
			}
			if err := products.Create(ctx, product); err != nil {
				return created, updated, err
			}
			created++
		}
	}

	return created, updated, nil
}
