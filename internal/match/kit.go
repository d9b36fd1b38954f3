package match

import (
	"strings"

	"bedwars/internal/models"
)

// ArmorTier is the armor quality a respawning player keeps from their
// previous life. Leggings and boots come from the tier; helmet and chestplate
// are always leather so the team color stays visible.
type ArmorTier int

const (
	TierLeather ArmorTier = iota
	TierChainmail
	TierIron
	TierDiamond
)

var tierPrefixes = map[string]ArmorTier{
	"LEATHER":   TierLeather,
	"CHAINMAIL": TierChainmail,
	"IRON":      TierIron,
	"DIAMOND":   TierDiamond,
}

func (a ArmorTier) prefix() string {
	switch a {
	case TierChainmail:
		return "CHAINMAIL"
	case TierIron:
		return "IRON"
	case TierDiamond:
		return "DIAMOND"
	default:
		return "LEATHER"
	}
}

// armorTierOf maps an armor piece material to its tier. Returns false for
// materials that are not armor.
func armorTierOf(material string) (ArmorTier, bool) {
	idx := strings.IndexByte(material, '_')
	if idx < 0 {
		return TierLeather, false
	}
	switch material[idx+1:] {
	case "HELMET", "CHESTPLATE", "LEGGINGS", "BOOTS":
	default:
		return TierLeather, false
	}
	tier, ok := tierPrefixes[material[:idx]]
	return tier, ok
}

// RespawnKit derives the loadout granted to a player joining or resurrecting
// into a team, seeded from the items they dropped on elimination. The base
// melee weapon is always granted; a pickaxe, axe, or shears are re-granted
// only if a matching item was dropped, and the armor tier is the best tier
// among dropped armor pieces.
func RespawnKit(team Team, dropped []models.Item) []models.Item {
	tier := TierLeather
	var addPick, addAxe, addShears bool
	for _, item := range dropped {
		switch {
		case strings.HasSuffix(item.Type, "PICKAXE"):
			addPick = true
		case strings.HasSuffix(item.Type, "AXE"):
			addAxe = true
		case item.Type == "SHEARS":
			addShears = true
		default:
			if t, ok := armorTierOf(item.Type); ok && t > tier {
				tier = t
			}
		}
	}

	kit := []models.Item{
		{Type: "WOOD_SWORD", Count: 1},
		{Type: "LEATHER_HELMET", Count: 1},
		{Type: "LEATHER_CHESTPLATE", Count: 1},
		{Type: tier.prefix() + "_LEGGINGS", Count: 1},
		{Type: tier.prefix() + "_BOOTS", Count: 1},
	}
	if addPick {
		kit = append(kit, models.Item{Type: "WOOD_PICKAXE", Count: 1})
	}
	if addAxe {
		kit = append(kit, models.Item{Type: "WOOD_AXE", Count: 1})
	}
	if addShears {
		kit = append(kit, models.Item{Type: "SHEARS", Count: 1})
	}
	return kit
}
