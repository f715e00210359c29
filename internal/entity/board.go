package entity

import "fmt"

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinLines - rows, columns, then diagonals. The order decides which line is reported
// when a board holds more than one.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - a 3x3 grid in row-major order. It is a value type, so every copy is an independent snapshot.
type Board [BoardSize]string

type WinResult struct {
	Winner string `json:"winner"`
	Line   [3]int `json:"line"`
}

// Evaluate - returns the first completed line in WinLines order, or nil when no line is complete.
func (that Board) Evaluate() *WinResult {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return &WinResult{
				Winner: a,
				Line:   line,
			}
		}
	}

	return nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - all cells are taken and nobody has a line.
func (that Board) IsDraw() bool {
	return that.IsFull() && that.Evaluate() == nil
}

// With - returns a copy of the board with the cell set to mark.
func (that Board) With(cell int, mark string) Board {
	if !IsValidCell(cell) {
		panic(fmt.Sprintf("cell %d is out of range [0, %d)", cell, BoardSize))
	}

	that[cell] = mark

	return that
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
