package entity

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrCorruptGame = errors.New("corrupt game")

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// Game - a session: every board since the start plus a cursor to the one on display.
type Game struct {
	ID          string  `json:"id"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

// Move - one entry of the "jump to move" list.
type Move struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

// GameState - what a client needs to draw the game.
type GameState struct {
	ID            string     `json:"id"`
	Board         Board      `json:"board"`
	NextPlayer    string     `json:"next_player"`
	Status        string     `json:"status"`
	StatusText    string     `json:"status_text"`
	Win           *WinResult `json:"win,omitempty"`
	CurrentMove   int        `json:"current_move"`
	HistoryLength int        `json:"history_length"`
	Moves         []Move     `json:"moves"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		History: []Board{{}},
	}
}

func (that *Game) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

func (that *Game) XIsNext() bool {
	return that.CurrentMove%2 == 0
}

func (that *Game) NextPlayer() string {
	if that.XIsNext() {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) Winner() *WinResult {
	return that.CurrentBoard().Evaluate()
}

func (that *Game) IsDraw() bool {
	return that.CurrentBoard().IsDraw()
}

// Play - puts the next player's mark on the cell. Returns false and leaves the game
// untouched when the cell is taken or the displayed board already has a winner.
func (that *Game) Play(cell int) bool {
	if !IsValidCell(cell) {
		panic(fmt.Sprintf("cell %d is out of range [0, %d)", cell, BoardSize))
	}

	board := that.CurrentBoard()

	if board.Evaluate() != nil || board[cell] != EmptyCell {
		return false
	}

	next := board.With(cell, that.NextPlayer())

	// moves after the cursor are dropped for good
	history := make([]Board, that.CurrentMove+1, that.CurrentMove+2)
	copy(history, that.History[:that.CurrentMove+1])

	that.History = append(history, next)
	that.CurrentMove = len(that.History) - 1

	return true
}

// JumpTo - moves the cursor. History is never modified.
func (that *Game) JumpTo(move int) {
	if !that.IsValidMove(move) {
		panic(fmt.Sprintf("move %d is out of range [0, %d)", move, len(that.History)))
	}

	that.CurrentMove = move
}

func (that *Game) IsValidMove(move int) bool {
	return move >= 0 && move < len(that.History)
}

// Validate - checks a game loaded from outside: at least one board, the cursor inside
// the history and only known marks on the boards.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", ErrCorruptGame)
	}

	if !that.IsValidMove(that.CurrentMove) {
		return fmt.Errorf("%w: move %d of %d", ErrCorruptGame, that.CurrentMove, len(that.History))
	}

	for i, board := range that.History {
		for cell, mark := range board {
			if mark != EmptyCell && mark != PlayerX && mark != PlayerO {
				return fmt.Errorf("%w: board %d cell %d holds %q", ErrCorruptGame, i, cell, mark)
			}
		}
	}

	return nil
}

func (that *Game) Status() string {
	switch {
	case that.Winner() != nil:
		return StatusWon
	case that.IsDraw():
		return StatusDraw
	default:
		return StatusOngoing
	}
}

func (that *Game) StatusText() string {
	if win := that.Winner(); win != nil {
		return "Winner: " + win.Winner
	}

	if that.IsDraw() {
		return "Draw!"
	}

	return "Playing: " + that.NextPlayer()
}

func (that *Game) Moves() []Move {
	moves := make([]Move, 0, len(that.History))

	for i := range that.History {
		description := "Go to game start"
		if i > 0 {
			description = "Go to move #" + strconv.Itoa(i)
		}

		moves = append(moves, Move{Index: i, Description: description})
	}

	return moves
}

func (that *Game) State() *GameState {
	return &GameState{
		ID:            that.ID,
		Board:         that.CurrentBoard(),
		NextPlayer:    that.NextPlayer(),
		Status:        that.Status(),
		StatusText:    that.StatusText(),
		Win:           that.Winner(),
		CurrentMove:   that.CurrentMove,
		HistoryLength: len(that.History),
		Moves:         that.Moves(),
	}
}

// Clone - deep copy, so stored games never share a history slice with callers.
func (that *Game) Clone() *Game {
	history := make([]Board, len(that.History))
	copy(history, that.History)

	return &Game{
		ID:          that.ID,
		History:     history,
		CurrentMove: that.CurrentMove,
	}
}
