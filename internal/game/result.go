// internal/game/result.go
package game

import (
	"time"

	"github.com/Fyrlex/war/engine"
	"github.com/Fyrlex/war/internal/database"
	"github.com/google/uuid"
)

// Result summarizes a finished (or interrupted) game.
type Result struct {
	GameID     uuid.UUID     `json:"gameId"`
	Players    [2]string     `json:"players"`
	Duration   time.Duration `json:"duration"`
	Duels      int           `json:"duels"`
	Rounds     int           `json:"rounds"`
	Winner     int           `json:"winner"` // index into Players, -1 for no winner
	WinnerName string        `json:"winnerName,omitempty"`
	TimedOut   bool          `json:"timedOut"`
	Reason     string        `json:"reason"`
}

// Result returns the current summary of the game.
func (g *WarGame) Result() Result {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.resultLocked()
}

// resultLocked builds the summary. Assumes lock is held by caller.
func (g *WarGame) resultLocked() Result {
	r := Result{
		GameID:   g.ID,
		Duration: g.Duration,
		Duels:    int(g.Engine.Duels),
		Rounds:   int(g.Engine.Rounds),
		Winner:   int(g.Winner),
		TimedOut: g.TimedOut,
		Reason:   g.reason(),
	}
	for i, p := range g.Players {
		if p != nil {
			r.Players[i] = p.Name
		}
	}
	if r.Winner >= 0 && g.Players[r.Winner] != nil {
		r.WinnerName = g.Players[r.Winner].Name
	}
	return r
}

func (g *WarGame) reason() string {
	switch {
	case !g.GameOver:
		return "in_progress"
	case g.TimedOut:
		return "timeout"
	default:
		return g.Engine.Reason.String()
	}
}

// Record returns the row persisted for this game.
func (g *WarGame) Record() database.Record {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.recordLocked()
}

// recordLocked assumes lock is held by caller.
func (g *WarGame) recordLocked() database.Record {
	rec := database.Record{
		GameID:     g.ID,
		Winner:     int(g.Winner),
		DurationMs: g.Duration.Milliseconds(),
		Duels:      int(g.Engine.Duels),
		Rounds:     int(g.Engine.Rounds),
		TimedOut:   g.TimedOut,
		CreatedAt:  g.now().UTC(),
	}
	if g.Players[0] != nil {
		rec.PlayerOne = g.Players[0].Name
	}
	if g.Players[1] != nil {
		rec.PlayerTwo = g.Players[1].Name
	}
	if g.Winner == engine.NoWinner {
		rec.Winner = database.NoWinner
	}
	return rec
}
