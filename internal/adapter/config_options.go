package adapter

import "github.com/hpn/freetier-router/internal/config"

// ConfigOptions translates the openrouter configuration section into adapter
// options. Zero values fall back to the adapter defaults.
func ConfigOptions(cfg config.OpenRouterConfig) []Option {
	return []Option{
		WithBaseURL(cfg.BaseURL),
		WithReferer(cfg.Referer),
		WithTitle(cfg.Title),
		WithTimeout(cfg.Timeout()),
		WithMaxTokens(cfg.MaxTokens),
		WithAliases(cfg.Aliases),
	}
}
