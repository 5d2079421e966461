package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
)

// baseURL returns the configured application base URL, falling back to the
// inbound request's own scheme and host.
func baseURL(c fiber.Ctx, cfg *config.Config) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return c.Protocol() + "://" + c.Hostname()
}

// dedupe returns the union of the given address lists, preserving first-seen
// order and dropping empty entries.
func dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, addr := range list {
			if addr == "" || seen[addr] {
				continue
			}
			seen[addr] = true
			out = append(out, addr)
		}
	}
	return out
}
