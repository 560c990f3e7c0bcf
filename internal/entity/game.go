package entity

import "fmt"

const (
	StateAwaitingHuman  = "awaiting_human"
	StateEngineThinking = "engine_thinking"
	StateFinished       = "finished"
)

const (
	OutcomeInProgress = "in_progress"
	OutcomeWin        = "win"
	OutcomeDraw       = "draw"
)

// Result is the evaluation of a board. Winner is set only for OutcomeWin.
type Result struct {
	Outcome string `json:"outcome"`
	Winner  Cell   `json:"winner,omitempty"`
}

func InProgress() Result {
	return Result{Outcome: OutcomeInProgress}
}

func Win(mark Cell) Result {
	return Result{Outcome: OutcomeWin, Winner: mark}
}

func Draw() Result {
	return Result{Outcome: OutcomeDraw}
}

func (that Result) IsTerminal() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeDraw
}

func (that Result) IsWin() bool {
	return that.Outcome == OutcomeWin
}

func (that Result) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

func (that Result) String() string {
	switch that.Outcome {
	case OutcomeWin:
		return fmt.Sprintf("%s won!", that.Winner)
	case OutcomeDraw:
		return "Draw!"
	default:
		return "in progress"
	}
}

// Move is a placed mark.
type Move struct {
	Position
	Mark Cell `json:"mark"`
}

// Game is the handle of a single human-versus-engine match.
type Game struct {
	ID         string `json:"id,omitempty"`
	Board      *Board `json:"board"`
	RunLength  int    `json:"run_length"`
	HumanMark  Cell   `json:"human_mark"`
	EngineMark Cell   `json:"engine_mark"`
	State      string `json:"state"`
	Result     Result `json:"result"`
	LastMove   *Move  `json:"last_move,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.State == StateFinished
}

func (that *Game) IsAwaitingHuman() bool {
	return that.State == StateAwaitingHuman
}

// CurrentBoard returns a snapshot that cannot be used to mutate the game.
func (that *Game) CurrentBoard() *Board {
	return that.Board.Clone()
}

func (that *Game) CurrentResult() Result {
	return that.Result
}

// Turn reports the mark expected to move next, or EmptyCell once finished.
func (that *Game) Turn() Cell {
	switch that.State {
	case StateAwaitingHuman:
		return that.HumanMark
	case StateEngineThinking:
		return that.EngineMark
	default:
		return EmptyCell
	}
}
