package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/pkg/config"
)

// seedMemoryStore deja un superadmin y una tienda en el almacén en memoria para poder
// iniciar sesión en desarrollo. Sin credenciales de arranque no siembra nada.
func seedMemoryStore(store *memory.RowStore, cfg config.StoreConfig) error {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.BootstrapPassword)
	if err != nil {
		return err
	}
	store.Seed(schema.TableProfiles, schema.Row{
		"id":            uuid.New().String(),
		"name":          "Administrador",
		"email":         cfg.BootstrapEmail,
		"role":          entity.RoleSuperAdmin,
		"password_hash": hash,
		"active":        true,
	})
	store.Seed(schema.TableShops, schema.Row{
		"id":         uuid.New().String(),
		"name":       "Tienda principal",
		"created_at": time.Now().UTC(),
	})
	return nil
}
