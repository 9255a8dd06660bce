package seed

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

// SeedData creates the role rows and a bootstrap admin account. Safe to
// run on every boot: existing rows are left alone.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	log.Println("[Seed] 🌱 Ensuring base roles and admin account...")

	// ============================================
	// ROLES
	// ============================================
	roleIDs := make(map[string]string, len(types.ValidRoles))
	for _, name := range types.ValidRoles {
		existing, err := repos.TypeUserRepo.FindByName(ctx, name)
		if err != nil {
			log.Printf("❌ [Seed] Failed to look up role %s: %v", name, err)
			return
		}
		if existing != nil {
			roleIDs[name] = existing.ID
			continue
		}
		role := &repository.TypeUser{Name: name}
		if err := repos.TypeUserRepo.Create(ctx, role); err != nil {
			log.Printf("❌ [Seed] Failed to create role %s: %v", name, err)
			return
		}
		roleIDs[name] = role.ID
		log.Printf("[Seed] Created role %s", name)
	}

	// ============================================
	// BOOTSTRAP ADMIN
	// ============================================
	admin, err := repos.UserRepo.FindByEmailAny(ctx, "admin@grupohub.io")
	if err != nil {
		log.Printf("❌ [Seed] Failed to look up admin: %v", err)
		return
	}
	if admin != nil {
		log.Println("[Seed] Admin account already exists, skipping")
		return
	}

	password, _ := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	user := &repository.User{
		Name:       "Administrator",
		Email:      "admin@grupohub.io",
		Password:   string(password),
		TypeUserID: roleIDs[types.RoleAdmin],
	}
	if err := repos.UserRepo.Create(ctx, user); err != nil {
		log.Printf("❌ [Seed] Failed to create admin: %v", err)
		return
	}

	log.Println("[Seed] ✅ Admin account created (admin@grupohub.io)")
}
