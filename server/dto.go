package server

import (
	"tetress/game"
)

type createGameRequest struct {
	Backend    string `json:"backend"`     // "bit" (default) or "sim"
	BudgetMs   int    `json:"budget_ms"`   // per-move budget for the engine
	Steps      int    `json:"steps"`       // rollout step budget
	SimCeiling int    `json:"sim_ceiling"` // simulations per move
	Seed       uint64 `json:"seed"`        // 0 for time-seeded search
}

type moveRequest struct {
	Cells [4][2]int `json:"cells"` // row, col pairs
}

type gameStateDTO struct {
	ID        string          `json:"id"`
	Cells     [][]string      `json:"cells"`
	Turn      string          `json:"turn"`
	TurnCount int             `json:"turn_count"`
	GameOver  bool            `json:"game_over"`
	Winner    string          `json:"winner"`
	RedScore  int             `json:"red_score"`
	BlueScore int             `json:"blue_score"`
	LastMove  string          `json:"last_move"`
	Search    *searchStatsDTO `json:"search,omitempty"`
}

// searchStatsDTO summarizes the engine's last move decision.
type searchStatsDTO struct {
	DurationMs   int64 `json:"duration_ms"`
	Episodes     int64 `json:"episodes"`
	FullPlayouts int64 `json:"full_playouts"`
	TreeReused   bool  `json:"tree_reused"`
}

func (req moveRequest) toAction() game.PlaceAction {
	return game.NewPlaceAction(
		game.NewCoord(req.Cells[0][0], req.Cells[0][1]),
		game.NewCoord(req.Cells[1][0], req.Cells[1][1]),
		game.NewCoord(req.Cells[2][0], req.Cells[2][1]),
		game.NewCoord(req.Cells[3][0], req.Cells[3][1]),
	)
}

func stateDTO(id string, b game.Board, lastMove string) gameStateDTO {
	cells := make([][]string, game.BoardN)
	for r := int8(0); r < game.BoardN; r++ {
		row := make([]string, game.BoardN)
		for c := int8(0); c < game.BoardN; c++ {
			row[c] = b.CellColor(game.Coord{R: r, C: c}).String()
		}
		cells[r] = row
	}
	winner := ""
	if b.GameOver() {
		winner = b.WinnerColor().String()
	}
	return gameStateDTO{
		ID:        id,
		Cells:     cells,
		Turn:      b.TurnColor().String(),
		TurnCount: b.TurnCount(),
		GameOver:  b.GameOver(),
		Winner:    winner,
		RedScore:  b.AggregateScore(game.Red),
		BlueScore: b.AggregateScore(game.Blue),
		LastMove:  lastMove,
	}
}
