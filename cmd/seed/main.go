package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

type seedRecipe struct {
	ownerMail string
	input     service.RecipeInput
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret)
	recipes := service.NewRecipeService(db)

	users := []struct {
		name, email, password string
	}{
		{"Demo Chef", "demo@forkful.dev", "demo1234"},
		{"Sam Baker", "sam@forkful.dev", "demo1234"},
	}

	ids := map[string]uuid.UUID{}
	for _, u := range users {
		created, _, err := auth.Register(u.name, u.email, u.password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				log.Printf("User %s already exists, skipping", u.email)
				var existing models.User
				if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
					ids[u.email] = existing.ID
				}
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", u.email, err)
		}
		ids[u.email] = created.ID
		log.Printf("Seeded user %s", u.email)
	}

	seeds := []seedRecipe{
		{
			ownerMail: "demo@forkful.dev",
			input: service.RecipeInput{
				Title:       "Classic Pancakes",
				Category:    "Breakfast",
				Chef:        "Demo Chef",
				PrepTime:    "10 minutes",
				CookTime:    "15 minutes",
				Servings:    "4",
				Ingredients: []string{"2 cups flour", "2 eggs", "1.5 cups milk", "1 tbsp sugar"},
				Method:      "Whisk the dry ingredients, fold in the wet ones and fry ladlefuls on a hot greased pan until golden on both sides.",
				Nutrition:   "Approx. 350 kcal per serving",
			},
		},
		{
			ownerMail: "sam@forkful.dev",
			input: service.RecipeInput{
				Title:       "Midnight Ramen",
				Category:    "Dinner",
				Chef:        "Sam Baker",
				PrepTime:    "5 minutes",
				CookTime:    "12 minutes",
				Servings:    "1",
				Ingredients: []string{"1 pack ramen noodles", "1 egg", "2 spring onions", "1 tbsp miso paste"},
				Method:      "Simmer the miso in stock, cook the noodles, soft-boil the egg and assemble with the sliced spring onions.",
				IsPrivate:   true,
			},
		},
	}

	ctx := context.Background()
	for _, s := range seeds {
		ownerID, ok := ids[s.ownerMail]
		if !ok {
			continue
		}
		if _, err := recipes.Create(ctx, ownerID, s.input); err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", s.input.Title, err)
		}
		log.Printf("Seeded recipe %q", s.input.Title)
	}

	log.Println("Seed complete")
}
