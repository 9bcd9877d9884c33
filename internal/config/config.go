package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

type statusEntry struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Value    int    `json:"value"`
}

type cardEntry struct {
	TemplateID        string       `json:"template_id"`
	Name              string       `json:"name"`
	Cost              int          `json:"cost"`
	Damage            int          `json:"damage"`
	Description       string       `json:"description"`
	Type              string       `json:"type"`
	CanTargetBackline bool         `json:"can_target_backline"`
	ApplyStatus       *statusEntry `json:"apply_status"`
	Effect            string       `json:"effect"`
	EffectValue       int          `json:"effect_value"`
}

type characterEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MaxHealth    int    `json:"max_health"`
	Passive      string `json:"passive"`
	PassiveValue int    `json:"passive_value"`
	PassiveText  string `json:"passive_text"`
}

type rawConfig struct {
	// Optional catalog overrides. When omitted the built-in catalog is
	// used; when provided they replace it wholesale.
	CardList      []cardEntry      `json:"card_list"`
	CharacterList []characterEntry `json:"character_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	DatabasePath string `json:"database_path"`
	// Milliseconds between built-in opponent steps.
	AIStepDelayMS int `json:"ai_step_delay_ms"`
}

// LoadedConfig carries everything the binaries need at startup.
type LoadedConfig struct {
	Catalog       *game.Catalog
	ServerAddress string
	DatabasePath  string
	AIStepDelayMS int
}

// Default returns the configuration used when no config file is given.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Catalog:       game.DefaultCatalog(),
		ServerAddress: ":8080",
		DatabasePath:  "soulrotation.db",
		AIStepDelayMS: 800,
	}
}

// LoadConfig reads the JSON configuration at path. Catalog overrides are
// validated before they replace the built-in catalog.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := Default()

	if len(rc.CardList) > 0 {
		cards, err := buildCards(path, rc.CardList)
		if err != nil {
			return nil, err
		}
		out.Catalog.Cards = cards
	}
	if len(rc.CharacterList) > 0 {
		chars, err := buildCharacters(path, rc.CharacterList)
		if err != nil {
			return nil, err
		}
		out.Catalog.Characters = chars
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.DatabasePath != "" {
		out.DatabasePath = rc.DatabasePath
	}
	if rc.AIStepDelayMS > 0 {
		out.AIStepDelayMS = rc.AIStepDelayMS
	}
	if env := os.Getenv(constants.EnvDBPath); env != "" {
		out.DatabasePath = env
	}
	return out, nil
}

// LoadFromEnv loads the file named by SOUL_CONFIG, or the defaults when the
// variable is unset.
func LoadFromEnv() (*LoadedConfig, error) {
	path := os.Getenv(constants.EnvConfigPath)
	if path == "" {
		cfg := Default()
		if env := os.Getenv(constants.EnvDBPath); env != "" {
			cfg.DatabasePath = env
		}
		return cfg, nil
	}
	return LoadConfig(path)
}

func buildCards(path string, entries []cardEntry) ([]game.Card, error) {
	seen := make(map[string]struct{}, len(entries))
	cards := make([]game.Card, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.TemplateID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'template_id'", path)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("config file %s: duplicate card template_id '%s'", path, id)
		}
		seen[id] = struct{}{}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("config file %s: card '%s' missing 'name'", path, id)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("config file %s: card '%s' has negative cost", path, id)
		}
		card := game.Card{
			TemplateID:        id,
			Name:              e.Name,
			Cost:              e.Cost,
			Damage:            e.Damage,
			Description:       e.Description,
			Type:              game.CardType(e.Type),
			CanTargetBackline: e.CanTargetBackline,
			Effect:            game.EffectKind(e.Effect),
			EffectValue:       e.EffectValue,
		}
		if e.ApplyStatus != nil {
			card.ApplyStatus = &game.StatusEffect{
				Type:     game.StatusType(e.ApplyStatus.Type),
				Duration: e.ApplyStatus.Duration,
				Value:    e.ApplyStatus.Value,
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func buildCharacters(path string, entries []characterEntry) ([]game.Character, error) {
	if len(entries) < constants.SquadSize*2 {
		return nil, fmt.Errorf("config file %s: character_list needs at least %d entries", path, constants.SquadSize*2)
	}
	seen := make(map[string]struct{}, len(entries))
	chars := make([]game.Character, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: character entry missing 'id'", path)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("config file %s: duplicate character id '%s'", path, id)
		}
		seen[id] = struct{}{}
		if e.MaxHealth <= 0 {
			return nil, fmt.Errorf("config file %s: character '%s' needs positive max_health", path, id)
		}
		chars = append(chars, game.Character{
			ID:            id,
			Name:          e.Name,
			MaxHealth:     e.MaxHealth,
			CurrentHealth: e.MaxHealth,
			Passive:       game.PassiveKind(e.Passive),
			PassiveValue:  e.PassiveValue,
			PassiveText:   e.PassiveText,
		})
	}
	return chars, nil
}
