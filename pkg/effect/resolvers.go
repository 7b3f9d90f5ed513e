package effect

import (
	"github.com/sixthedge/coreengine/pkg/state"
	"github.com/sixthedge/coreengine/pkg/types"
)

func instanceTargets(ctx *Ctx) []*state.CardInstance {
	var out []*state.CardInstance
	for _, ref := range ctx.Targets {
		if ref.IsInstance() {
			if c, _, ok := ctx.State.FindInstance(*ref.InstanceID); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func playerTargets(ctx *Ctx) []types.PlayerId {
	var out []types.PlayerId
	for _, ref := range ctx.Targets {
		if ref.IsPlayer() {
			out = append(out, *ref.Player)
		}
	}
	return out
}

func resolveDealDamage(ctx *Ctx, e Effect) error {
	amount := effectiveAmount(ctx, e)
	for _, c := range instanceTargets(ctx) {
		c.Damage += amount
	}
	for _, pid := range playerTargets(ctx) {
		ctx.State.Get(pid).Life -= amount
	}
	return nil
}

func resolveGainLife(ctx *Ctx, e Effect) error {
	amount := effectiveAmount(ctx, e)
	targets := playerTargets(ctx)
	if len(targets) == 0 {
		targets = []types.PlayerId{ctx.Controller}
	}
	for _, pid := range targets {
		ctx.State.Get(pid).Life += amount
	}
	return nil
}

func resolveLoseLife(ctx *Ctx, e Effect) error {
	amount := effectiveAmount(ctx, e)
	targets := playerTargets(ctx)
	if len(targets) == 0 {
		targets = []types.PlayerId{ctx.Controller}
	}
	for _, pid := range targets {
		ctx.State.Get(pid).Life -= amount
	}
	return nil
}

func resolvePump(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		mod := state.TemporaryModification{
			ID:              state.NextModID(),
			PowerDelta:      e.PowerDelta,
			ToughnessDelta:  e.ToughDelta,
			GrantedKeywords: keywordSlice(e.Keyword),
			ExpiresAt:       e.Duration,
		}
		c.TemporaryMods = append(c.TemporaryMods, mod)
	}
	return nil
}

func keywordSlice(k string) []string {
	if k == "" {
		return nil
	}
	return []string{k}
}

func resolveDrawCards(ctx *Ctx, e Effect) error {
	amount := effectiveAmount(ctx, e)
	targets := playerTargets(ctx)
	if len(targets) == 0 {
		targets = []types.PlayerId{ctx.Controller}
	}
	for _, pid := range targets {
		drawN(ctx.State, pid, amount)
	}
	return nil
}

// drawN draws up to n cards for pid. Drawing from an empty library is a
// state-based loss condition (spec §4.10), not handled here: the reducer's
// SBA fixpoint observes the empty-library draw attempt via a deck-out flag
// the next time it runs. Here we simply move what is available.
func drawN(g *state.GameState, pid types.PlayerId, n int) {
	p := g.Get(pid)
	for i := 0; i < n; i++ {
		if len(p.Library) == 0 {
			p.DeckedOut = true
			return
		}
		c := p.Library[0]
		p.Library = p.Library[1:]
		c.Zone = types.Hand
		p.Hand = append(p.Hand, c)
	}
}

func resolveDiscard(ctx *Ctx, e Effect) error {
	amount := effectiveAmount(ctx, e)
	targets := playerTargets(ctx)
	if len(targets) == 0 {
		targets = []types.PlayerId{ctx.Controller}
	}
	for _, pid := range targets {
		p := ctx.State.Get(pid)
		for i := 0; i < amount && len(p.Hand) > 0; i++ {
			idx := 0
			if e.DiscardChooser == ChooserRandom && ctx.RNG != nil {
				idx = ctx.RNG.Intn(len(p.Hand))
			}
			c := p.Hand[idx]
			p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
			c.Zone = types.Graveyard
			p.Graveyard = append(p.Graveyard, c)
		}
	}
	return nil
}

func moveToZone(g *state.GameState, c *state.CardInstance, owner *state.PlayerState, dest types.Zone) {
	if c.IsToken && dest != types.Battlefield {
		// Tokens cease to exist when leaving the battlefield (spec §3
		// invariant) — removing from the source zone is enough; do not
		// append to the destination.
		owner.RemoveFromZone(c.Zone, c.InstanceID)
		return
	}
	owner.RemoveFromZone(c.Zone, c.InstanceID)
	c.Zone = dest
	c.Tapped = false
	c.Attacking = false
	c.Blocking = nil
	c.BlockedBy = nil
	c.AttachedTo = nil
	c.Attachments = nil
	c.Counters = map[types.CounterKind]int{}
	c.TemporaryMods = nil
	c.RegenShields = 0
	switch dest {
	case types.Hand:
		owner.Hand = append(owner.Hand, c)
	case types.Graveyard:
		owner.Graveyard = append(owner.Graveyard, c)
	case types.Exile:
		owner.Exile = append(owner.Exile, c)
	case types.Library:
		owner.Library = append(owner.Library, c)
	case types.Battlefield:
		owner.Battlefield = append(owner.Battlefield, c)
	}
}

func resolveDestroy(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		if !e.NoRegeneration && c.RegenShields > 0 {
			c.RegenShields--
			c.Damage = 0
			c.Tapped = true
			c.Attacking = false
			c.Blocking = nil
			c.BlockedBy = nil
			continue
		}
		_, owner, ok := ctx.State.FindInstance(c.InstanceID)
		if !ok {
			continue
		}
		moveToZone(ctx.State, c, owner, types.Graveyard)
	}
	return nil
}

func resolveExile(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		_, owner, ok := ctx.State.FindInstance(c.InstanceID)
		if !ok {
			continue
		}
		moveToZone(ctx.State, c, owner, types.Exile)
	}
	return nil
}

func resolveBounce(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		owner := ctx.State.Get(c.Owner)
		moveToZone(ctx.State, c, owner, types.Hand)
	}
	return nil
}

func resolveCounter(ctx *Ctx, e Effect) error {
	for _, ref := range ctx.Targets {
		if !ref.IsInstance() {
			continue
		}
		for _, obj := range ctx.State.Stack {
			if obj.SourceInstance == *ref.InstanceID {
				if e.CounterTyped != "" {
					// Typed counters (any/creature/non-creature) are
					// enforced at targeting time via target.Requirement
					// restrictions, not re-checked here.
				}
				obj.Countered = true
				obj.CounterToTop = e.CounterToTop
			}
		}
	}
	return nil
}

func resolveReturnFromGraveyard(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		owner := ctx.State.Get(c.Owner)
		moveToZone(ctx.State, c, owner, e.SearchToZone)
	}
	return nil
}

func resolveTapUntap(ctx *Ctx, tap bool) error {
	for _, c := range instanceTargets(ctx) {
		c.Tapped = tap
	}
	return nil
}

func resolveAddMana(ctx *Ctx, e Effect) error {
	p := ctx.State.Get(ctx.Controller)
	switch e.ManaColor {
	case types.White:
		p.ManaPool.White += e.ManaCount
	case types.Blue:
		p.ManaPool.Blue += e.ManaCount
	case types.Black:
		p.ManaPool.Black += e.ManaCount
	case types.Red:
		p.ManaPool.Red += e.ManaCount
	case types.Green:
		p.ManaPool.Green += e.ManaCount
	default:
		p.ManaPool.Colorless += e.ManaCount
	}
	return nil
}

func resolveCreateToken(ctx *Ctx, e Effect) error {
	p := ctx.State.Get(ctx.Controller)
	for i := 0; i < e.TokenCount; i++ {
		tok := state.NewCardInstance(e.TokenTemplateID, ctx.Controller, types.Battlefield)
		tok.IsToken = true
		tok.TokenKind = e.TokenTemplateID
		tok.SummoningSick = true
		tok.SinceTurn = ctx.State.TurnCount
		p.Battlefield = append(p.Battlefield, tok)
	}
	return nil
}

func resolveMassDestroy(ctx *Ctx, e Effect) error {
	for _, pid := range []types.PlayerId{types.Player, types.Opponent} {
		p := ctx.State.Get(pid)
		var toDestroy []*state.CardInstance
		for _, c := range p.Battlefield {
			if massMatches(ctx, e.MassPredicate, c) {
				toDestroy = append(toDestroy, c)
			}
		}
		for _, c := range toDestroy {
			moveToZone(ctx.State, c, p, types.Graveyard)
		}
	}
	return nil
}

func massMatches(ctx *Ctx, pred MassPredicate, c *state.CardInstance) bool {
	t, ok := ctx.Templates.GetByID(c.TemplateID)
	if !ok {
		return false
	}
	switch pred {
	case AllCreatures:
		return t.IsCreature()
	case AllLands:
		return t.IsLand()
	case AllEnchantments:
		return t.IsEnchantment()
	case AllNonBlackCreatures:
		if !t.IsCreature() {
			return false
		}
		for _, col := range t.Colors {
			if col == "B" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func resolvePreventDamage(ctx *Ctx, e Effect) error {
	targets := playerTargets(ctx)
	for _, pid := range targets {
		p := ctx.State.Get(pid)
		p.PreventionShields = append(p.PreventionShields, state.PreventionShield{
			Color:           e.PreventColor,
			AmountRemaining: e.PreventAmount,
		})
	}
	return nil
}

func resolveRegenerate(ctx *Ctx, e Effect) error {
	for _, c := range instanceTargets(ctx) {
		c.RegenShields++
	}
	return nil
}

func resolveSearchLibrary(ctx *Ctx, e Effect) error {
	p := ctx.State.Get(ctx.Controller)
	for _, c := range p.Library {
		t, ok := ctx.Templates.GetByID(c.TemplateID)
		if !ok {
			continue
		}
		if e.SearchPredicate == nil || e.SearchPredicate(t) {
			moveToZone(ctx.State, c, p, e.SearchToZone)
			return nil
		}
	}
	return nil
}

func resolveScry(ctx *Ctx, e Effect) error {
	// Looking at and reordering the top N is a player-decision surface the
	// headless engine exposes as a deterministic default: keep order as-is.
	// AI/bot policies that want a real choice drive it through a future
	// ScryDecision action; §1 scopes AI policy out of the core.
	_ = e
	return nil
}
