package match

// Hit records one registered bullet hit during a tick.
type Hit struct {
	PlayerID  string
	Health    int
	ShooterID string
}

// End records the match ending during a tick or on a forfeit.
type End struct {
	Winner string
	Reason string
}

// StepResult is everything a single tick produced, in order, for the owning
// lobby to broadcast. Damage has already been applied in place when it is
// returned.
type StepResult struct {
	Hits []Hit
	End  *End
}

// Step advances the simulation by one tick:
//
//  1. Every live bullet moves by direction * BulletSpeed (direction taken as
//     given, never renormalized).
//  2. A bullet leaving the arena bounds is culled the same tick.
//  3. A surviving bullet is tested against every participant other than its
//     shooter; a hit registers at distance < HitRadius. A bullet hits at most
//     one participant and is removed on the first match.
//  4. A hit subtracts BulletDamage from the target. Health may go negative
//     internally; the death threshold is <= 0.
//  5. The first kill of the tick ends the match with the shooter's name as
//     winner, falling back to "Unknown" if the shooter's record is already
//     gone. Remaining bullets still finish the pass.
//
// Precondition: The caller serializes Step against all other mutators.
// Postcondition: The live bullet set contains only in-bounds, non-hit bullets.
func (s *State) Step() StepResult {
	var res StepResult

	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.Position = b.Position.Add(b.Direction.Scale(s.arena.BulletSpeed))

		if !s.arena.Contains(b.Position) {
			continue
		}

		hit := false
		for id, p := range s.Players {
			if id == b.ShooterID {
				continue
			}
			if b.Position.Dist(p.Position) >= s.arena.HitRadius {
				continue
			}

			p.Health -= s.arena.BulletDamage
			res.Hits = append(res.Hits, Hit{
				PlayerID:  id,
				Health:    p.Health,
				ShooterID: b.ShooterID,
			})

			if p.Health <= 0 && !s.Over {
				winner := "Unknown"
				if shooter, ok := s.Players[b.ShooterID]; ok {
					winner = shooter.Name
				}
				s.Over = true
				s.Winner = winner
				res.End = &End{Winner: winner, Reason: ReasonElimination}
			}

			hit = true
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	// Drop the tail so culled bullet pointers do not linger.
	for i := len(kept); i < len(s.Bullets); i++ {
		s.Bullets[i] = nil
	}
	s.Bullets = kept

	return res
}

// Forfeit ends the match in favor of the named participant, used when the
// opponent disconnects mid-match.
//
// Postcondition: Returns the End to broadcast, or nil if the match was
// already over (forfeit after elimination is a no-op).
func (s *State) Forfeit(winnerName string) *End {
	if s.Over {
		return nil
	}
	s.Over = true
	s.Winner = winnerName
	return &End{Winner: winnerName, Reason: ReasonForfeit}
}
