// internal/seed/seed.go
package seed

import (
	"context"
	"log"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	// Check if data already exists
	existing, _ := repos.UserRepo.FindByEmail(ctx, "maya.rivera@designplatform.io")
	if existing != nil {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	// ============================================
	// CREATE USERS
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Project manager overseeing everything
	maya := &repository.User{
		Email:    "maya.rivera@designplatform.io",
		Password: string(password),
		Name:     "Maya Rivera",
		Role:     types.RoleProjectManager,
	}
	repos.UserRepo.Create(ctx, maya)

	// Clients bringing in work
	oliver := &repository.User{
		Email:    "oliver.chen@acme.example",
		Password: string(password),
		Name:     "Oliver Chen",
		Role:     types.RoleClient,
	}
	repos.UserRepo.Create(ctx, oliver)

	priya := &repository.User{
		Email:    "priya.shah@northwind.example",
		Password: string(password),
		Name:     "Priya Shah",
		Role:     types.RoleClient,
	}
	repos.UserRepo.Create(ctx, priya)

	// Designers taking assignments
	lena := &repository.User{
		Email:    "lena.kovacs@designplatform.io",
		Password: string(password),
		Name:     "Lena Kovacs",
		Role:     types.RoleDesigner,
	}
	repos.UserRepo.Create(ctx, lena)

	diego := &repository.User{
		Email:    "diego.fuentes@designplatform.io",
		Password: string(password),
		Name:     "Diego Fuentes",
		Role:     types.RoleDesigner,
	}
	repos.UserRepo.Create(ctx, diego)

	log.Println("✅ Created 5 users: Maya (manager), Oliver & Priya (clients), Lena & Diego (designers)")

	// ============================================
	// CREATE PROJECTS
	// ============================================

	// Oliver's rebrand, already assigned to Lena
	rebrand := &repository.Project{
		Title:       "Acme Rebrand",
		Description: "Full visual identity refresh: logo, palette, typography",
		ClientID:    oliver.ID,
	}
	repos.ProjectRepo.Create(ctx, rebrand)
	repos.ProjectRepo.UpdateDesigner(ctx, rebrand.ID, &lena.ID)

	// Priya's landing page, waiting for a designer
	landing := &repository.Project{
		Title:       "Northwind Landing Page",
		Description: "Marketing site for the spring product launch",
		ClientID:    priya.ID,
	}
	repos.ProjectRepo.Create(ctx, landing)

	// Oliver's second project, unassigned
	packaging := &repository.Project{
		Title:       "Acme Packaging Concepts",
		Description: "Three packaging directions for the retail line",
		ClientID:    oliver.ID,
	}
	repos.ProjectRepo.Create(ctx, packaging)

	log.Println("✅ Created 3 projects (1 assigned, 2 awaiting designers)")
	log.Println("[Seed] 🎉 Seeding complete")
}
