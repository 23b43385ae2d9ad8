package monsters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Drop is a single loot table entry for a monster.
type Drop struct {
	ID               *int     `json:"id"`
	Name             string   `json:"name"`
	Members          bool     `json:"members"`
	Quantity         *string  `json:"quantity"`
	Noted            bool     `json:"noted"`
	Rarity           *float64 `json:"rarity"`
	DropRequirements *string  `json:"drop_requirements"`
}

// Monster retains all properties and stats for one specific monster.
// Cache fields (id, name, combat_level, size) come from the game cache dump
// and are always present; wiki-sourced fields are pointers when absence is
// meaningful, and Incomplete is set when any required field could not be
// resolved.
type Monster struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	LastUpdated   string         `json:"last_updated"`
	Incomplete    bool           `json:"incomplete"`
	Members       bool           `json:"members"`
	ReleaseDate   *string        `json:"release_date"`
	CombatLevel   int            `json:"combat_level"`
	Size          int            `json:"size"`
	Hitpoints     *int           `json:"hitpoints"`
	MaxHit        map[string]int `json:"max_hit"`
	AttackType    []string       `json:"attack_type"`
	AttackSpeed   *int           `json:"attack_speed"`
	Aggressive    bool           `json:"aggressive"`
	Poisonous     bool           `json:"poisonous"`
	Venomous      bool           `json:"venomous"`
	ImmunePoison  bool           `json:"immune_poison"`
	ImmuneVenom   bool           `json:"immune_venom"`
	Attributes    []string       `json:"attributes"`
	Category      []string       `json:"category"`
	SlayerMonster bool           `json:"slayer_monster"`
	SlayerLevel   *int           `json:"slayer_level"`
	SlayerXP      *float64       `json:"slayer_xp"`
	SlayerMasters []string       `json:"slayer_masters"`
	Duplicate     bool           `json:"duplicate"`
	Examine       *string        `json:"examine"`
	WikiName      string         `json:"wiki_name"`
	WikiURL       string         `json:"wiki_url"`
	AttackLevel   int            `json:"attack_level"`
	StrengthLevel int            `json:"strength_level"`
	DefenceLevel  int            `json:"defence_level"`
	MagicLevel    int            `json:"magic_level"`
	RangedLevel   int            `json:"ranged_level"`
	AttackBonus   int            `json:"attack_bonus"`
	StrengthBonus int            `json:"strength_bonus"`
	AttackMagic   int            `json:"attack_magic"`
	MagicBonus    int            `json:"magic_bonus"`
	AttackRanged  int            `json:"attack_ranged"`
	RangedBonus   int            `json:"ranged_bonus"`
	DefenceStab   int            `json:"defence_stab"`
	DefenceSlash  int            `json:"defence_slash"`
	DefenceCrush  int            `json:"defence_crush"`
	DefenceMagic  int            `json:"defence_magic"`
	DefenceRanged int            `json:"defence_ranged"`
	Drops         []Drop         `json:"drops"`
	RareDropTable bool           `json:"rare_drop_table"`
}

// ToMap converts the record into a generic JSON map, the shape used for
// diffing and schema validation.
func (m *Monster) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportJSON writes the record to <dir>/<id>.json.
func (m *Monster) ExportJSON(pretty bool, dir string) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(m, "", "    ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	path := filepath.Join(dir, strconv.Itoa(m.ID)+".json")
	return os.WriteFile(path, data, 0644)
}
