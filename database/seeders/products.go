package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a starter catalog, one offering per category.
// Skips silently when the collection already has documents.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("products")
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	repo := repositories.NewProductRepository(db)
	catalog := []models.Product{
		{Name: "Gobi Decoration 1", Description: "Full stage and entrance decor with fresh flowers", Price: 10000, Category: "decoration"},
		{Name: "Royal Feast Catering", Description: "Multi-cuisine buffet, 200 plates", Price: 45000, Category: "catering"},
		{Name: "Bridal Mehndi Classic", Description: "Bridal hands and feet, traditional patterns", Price: 6000, Category: "mehndi"},
		{Name: "HD Bridal Makeup", Description: "Bridal makeup with trial session", Price: 12000, Category: "makeup"},
		{Name: "Candid Photography Day", Description: "Full-day candid coverage, two photographers", Price: 30000, Category: "photography"},
		{Name: "Lakeside Garden Venue", Description: "Open lawn for 500 guests with parking", Price: 80000, Category: "venue"},
	}
	for i := range catalog {
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	return nil
}
