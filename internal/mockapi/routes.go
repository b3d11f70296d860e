package mockapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samvad-hq/hero-data-service/internal/domain"
	"github.com/samvad-hq/hero-data-service/internal/storage"
)

// RegisterRoutes attaches the heroes resource to app.
func RegisterRoutes(app *fiber.App, store storage.Store) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api/heroes")
	api.Get("/", ListHeroes(store))
	api.Get("/:id", GetHero(store))
	api.Post("/", CreateHero(store))
	api.Put("/", UpdateHero(store))
	api.Delete("/:id", DeleteHero(store))
}

// ListHeroes returns every hero, or the case-insensitive name matches when ?name= is given.
func ListHeroes(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			heroes []domain.Hero
			err    error
		)
		if term := c.Query("name"); term != "" {
			heroes, err = store.Search(term)
		} else {
			heroes, err = store.List()
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(heroes)
	}
}

// GetHero returns one hero by id.
func GetHero(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		hero, err := store.Get(id)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(hero)
	}
}

// CreateHero stores a new hero under a server-assigned id.
func CreateHero(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var hero domain.Hero
		if err := c.BodyParser(&hero); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid hero body")
		}
		hero.Name = strings.TrimSpace(hero.Name)
		if hero.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}
		created, err := store.Create(hero)
		if err != nil {
			return storeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateHero replaces the hero identified by the body's id.
func UpdateHero(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var hero domain.Hero
		if err := c.BodyParser(&hero); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid hero body")
		}
		if hero.ID <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		hero.Name = strings.TrimSpace(hero.Name)
		if hero.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}
		if err := store.Update(hero); err != nil {
			return storeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteHero removes a hero and returns the removed record.
func DeleteHero(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		hero, err := store.Delete(id)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(hero)
	}
}

func storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
