package ability

import (
	"github.com/sixthedge/coreengine/pkg/mana"
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

// ManaSourceAdapter implements mana.SourceProvider over the ability
// Registry's mana-ability descriptors, so pkg/mana never needs to import
// pkg/ability directly (avoids the import cycle noted in SPEC_FULL.md
// §4.2: mana depends on ability only through this interface seam).
type ManaSourceAdapter struct {
	Registry *Registry
}

// AvailableSources returns one mana.Source per untapped permanent the
// player controls that carries a mana ability (spec §4.2).
func (a ManaSourceAdapter) AvailableSources(g *state.GameState, player types.PlayerId) []mana.Source {
	var out []mana.Source
	for i, inst := range g.Get(player).Battlefield {
		if inst.Tapped {
			continue
		}
		descs := a.Registry.ManaAbilitiesOf(inst.TemplateID)
		if len(descs) == 0 {
			continue
		}
		var colors []types.ManaType
		for _, d := range descs {
			colors = append(colors, d.Effect.ManaColor)
		}
		out = append(out, mana.Source{
			InstanceID:       inst.InstanceID,
			Colors:           colors,
			BattlefieldIndex: i,
		})
	}
	return out
}
