package adapter

import (
	"sort"
	"strings"

	"github.com/hpn/freetier-router/internal/domain"
)

const (
	// FreeModelSuffix marks model names this adapter serves.
	FreeModelSuffix = "-free"

	// FreeTierSuffix is appended to every vendor id sent upstream.
	FreeTierSuffix = ":free"
)

// defaultAliases maps simplified names to OpenRouter model ids.
// It is copied into each adapter and never mutated.
var defaultAliases = map[string]string{
	"qwen-coder-free":       "qwen/qwen-2.5-coder-32b-instruct:free",
	"deepseek-r1-free":      "deepseek/deepseek-r1:free",
	"mistral-devstral-free": "mistralai/devstral-small:free",
	"gemini-flash-free":     "google/gemini-2.0-flash-exp:free",
	"llama-70b-free":        "meta-llama/llama-3.3-70b-instruct:free",
	"qwq-32b-free":          "qwen/qwq-32b:free",
	"nemotron-free":         "nvidia/llama-3.1-nemotron-ultra-253b-v1:free",
}

// DefaultAliases returns a copy of the built-in alias table.
func DefaultAliases() map[string]string {
	return copyAliases(defaultAliases)
}

func copyAliases(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ensureFreeTier appends the tier suffix unless the id already ends with it.
func ensureFreeTier(vendorID string) string {
	if strings.HasSuffix(vendorID, FreeTierSuffix) {
		return vendorID
	}
	return vendorID + FreeTierSuffix
}

// sortedAliases renders an alias table as a list ordered by alias.
func sortedAliases(table map[string]string) []domain.ModelAlias {
	models := make([]domain.ModelAlias, 0, len(table))
	for alias, vendorID := range table {
		models = append(models, domain.ModelAlias{
			Alias:    alias,
			VendorID: ensureFreeTier(vendorID),
		})
	}
	sort.Slice(models, func(i, j int) bool {
		return models[i].Alias < models[j].Alias
	})
	return models
}
