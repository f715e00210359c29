package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playAll(t *testing.T, game *Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, game.Play(cell), "move on cell %d was ignored", cell)
	}
}

func TestNewGame(t *testing.T) {
	// Given: a new game
	game := NewGame("123")

	// Then: it holds one empty board, the cursor is at the start and X moves first
	expectedGame := &Game{
		ID:          "123",
		History:     []Board{{}},
		CurrentMove: 0,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, PlayerX, game.NextPlayer())
	assert.Equal(t, StatusOngoing, game.Status())
	assert.Equal(t, "Playing: X", game.StatusText())
}

func TestGame_Play(t *testing.T) {
	t.Run("Successful move", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")

		// When: the first move is played on cell 0
		applied := game.Play(0)

		// Then: X is placed, the history grows and O is next
		require.True(t, applied)
		assert.Equal(t, Board{PlayerX}, game.CurrentBoard())
		assert.Len(t, game.History, 2)
		assert.Equal(t, 1, game.CurrentMove)
		assert.Equal(t, PlayerO, game.NextPlayer())
		assert.Equal(t, Board{}, game.History[0])
	})

	t.Run("History length is plays plus one", func(t *testing.T) {
		game := NewGame("123")

		for n, cell := range []int{4, 0, 8, 2, 6} {
			playAll(t, game, cell)
			assert.Len(t, game.History, n+2)
		}
	})

	t.Run("Turns alternate starting with X", func(t *testing.T) {
		// Given: a game with several moves
		game := NewGame("123")
		cells := []int{4, 0, 8, 2, 1, 7}

		// When: the moves are played
		playAll(t, game, cells...)

		// Then: move i placed X when i is even and O when odd
		for i, cell := range cells {
			expected := PlayerX
			if i%2 == 1 {
				expected = PlayerO
			}

			assert.Equal(t, expected, game.History[i+1][cell])
		}
	})

	t.Run("Ignores an occupied cell", func(t *testing.T) {
		// Given: a game where cell 0 is taken by X
		game := NewGame("123")
		playAll(t, game, 0)
		before := game.Clone()

		// When: O clicks the same cell
		applied := game.Play(0)

		// Then: nothing changes
		assert.False(t, applied)
		assert.Equal(t, before, game)
	})

	t.Run("Ignores moves after a win", func(t *testing.T) {
		// Given: a game X has won
		game := NewGame("123")
		playAll(t, game, 0, 3, 1, 4, 2)
		before := game.Clone()

		// When: O tries to keep playing
		applied := game.Play(5)

		// Then: nothing changes
		assert.False(t, applied)
		assert.Equal(t, before, game)
	})

	t.Run("Panics on a cell outside the board", func(t *testing.T) {
		game := NewGame("123")

		assert.Panics(t, func() { game.Play(9) })
		assert.Panics(t, func() { game.Play(-1) })
	})
}

func TestGame_Winner(t *testing.T) {
	t.Run("X wins the top row", func(t *testing.T) {
		// Given: X plays 0, 1, 2 and O plays 3, 4
		game := NewGame("123")
		playAll(t, game, 0, 3, 1, 4, 2)

		// When: asking for the winner
		win := game.Winner()

		// Then: X wins with the top row
		require.NotNil(t, win)
		assert.Equal(t, PlayerX, win.Winner)
		assert.Equal(t, [3]int{0, 1, 2}, win.Line)
		assert.Equal(t, StatusWon, game.Status())
		assert.Equal(t, "Winner: X", game.StatusText())
	})

	t.Run("Draw when the board fills without a line", func(t *testing.T) {
		// Given: all nine cells played without completing a line
		game := NewGame("123")
		playAll(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: there is no winner and the board is full
		assert.Nil(t, game.Winner())
		assert.True(t, game.CurrentBoard().IsFull())
		assert.True(t, game.IsDraw())
		assert.Equal(t, StatusDraw, game.Status())
		assert.Equal(t, "Draw!", game.StatusText())

		// And: no further move is accepted
		assert.False(t, game.Play(0))
	})

	t.Run("Ninth move can complete a line", func(t *testing.T) {
		// Given: moves 0, 1, 2, 3, 4, 6, 5, 7 leave no line
		game := NewGame("123")
		playAll(t, game, 0, 1, 2, 3, 4, 6, 5, 7)
		require.Nil(t, game.Winner())

		// When: X takes cell 8
		playAll(t, game, 8)

		// Then: X completes the 0-4-8 diagonal on a full board
		win := game.Winner()
		require.NotNil(t, win)
		assert.Equal(t, PlayerX, win.Winner)
		assert.Equal(t, [3]int{0, 4, 8}, win.Line)
		assert.False(t, game.IsDraw())
	})
}

func TestGame_JumpTo(t *testing.T) {
	t.Run("Moves the cursor without touching history", func(t *testing.T) {
		// Given: a game with three moves
		game := NewGame("123")
		playAll(t, game, 0, 4, 8)
		history := game.Clone().History

		// When: jumping back to move 1
		game.JumpTo(1)

		// Then: the first board is displayed, O is next and the history is intact
		assert.Equal(t, 1, game.CurrentMove)
		assert.Equal(t, Board{PlayerX}, game.CurrentBoard())
		assert.Equal(t, PlayerO, game.NextPlayer())
		assert.Equal(t, history, game.History)
	})

	t.Run("Playing after a jump discards the future", func(t *testing.T) {
		// Given: a game at move 3 jumped back to move 1
		game := NewGame("123")
		playAll(t, game, 0, 4, 8)
		game.JumpTo(1)

		// When: a new move is played
		playAll(t, game, 2)

		// Then: history is truncated to move 1 and the new board appended
		assert.Len(t, game.History, 3)
		assert.Equal(t, 2, game.CurrentMove)
		assert.Equal(t, Board{PlayerX, EmptyCell, PlayerO}, game.CurrentBoard())
	})

	t.Run("Jumping back from a win allows play again", func(t *testing.T) {
		// Given: a game X has won
		game := NewGame("123")
		playAll(t, game, 0, 3, 1, 4, 2)

		// When: jumping back before the winning move
		game.JumpTo(4)

		// Then: X can play again
		assert.Nil(t, game.Winner())
		assert.True(t, game.Play(8))
		assert.Len(t, game.History, 6)
	})

	t.Run("Jumping to the current move is allowed", func(t *testing.T) {
		game := NewGame("123")
		playAll(t, game, 0)

		game.JumpTo(1)

		assert.Equal(t, 1, game.CurrentMove)
	})

	t.Run("Panics out of range", func(t *testing.T) {
		game := NewGame("123")
		playAll(t, game, 0)

		assert.Panics(t, func() { game.JumpTo(2) })
		assert.Panics(t, func() { game.JumpTo(-1) })
	})
}

func TestGame_Moves(t *testing.T) {
	// Given: a game with two moves
	game := NewGame("123")
	playAll(t, game, 0, 1)

	// When: listing the moves
	moves := game.Moves()

	// Then: every history entry is listed
	expected := []Move{
		{Index: 0, Description: "Go to game start"},
		{Index: 1, Description: "Go to move #1"},
		{Index: 2, Description: "Go to move #2"},
	}

	assert.Equal(t, expected, moves)
}

func TestGame_State(t *testing.T) {
	// Given: a game won by X and rewound one move
	game := NewGame("123")
	playAll(t, game, 0, 3, 1, 4, 2)

	// When: building the state
	state := game.State()

	// Then: it reflects the displayed board
	require.NotNil(t, state.Win)
	assert.Equal(t, "123", state.ID)
	assert.Equal(t, StatusWon, state.Status)
	assert.Equal(t, 5, state.CurrentMove)
	assert.Equal(t, 6, state.HistoryLength)
	assert.Len(t, state.Moves, 6)

	game.JumpTo(2)
	state = game.State()

	assert.Nil(t, state.Win)
	assert.Equal(t, StatusOngoing, state.Status)
	assert.Equal(t, PlayerX, state.NextPlayer)
	assert.Equal(t, "Playing: X", state.StatusText)
	assert.Equal(t, Board{PlayerX, EmptyCell, EmptyCell, PlayerO}, state.Board)
}

func TestGame_Clone(t *testing.T) {
	// Given: a game and its clone
	game := NewGame("123")
	playAll(t, game, 0)
	clone := game.Clone()

	// When: the original keeps playing
	playAll(t, game, 1)

	// Then: the clone is unaffected
	assert.Len(t, clone.History, 2)
	assert.Equal(t, 1, clone.CurrentMove)
}

func TestGame_Validate(t *testing.T) {
	t.Run("Accepts a played and rewound game", func(t *testing.T) {
		game := NewGame("123")
		playAll(t, game, 0, 4)
		game.JumpTo(1)

		assert.NoError(t, game.Validate())
	})

	tests := []struct {
		name string
		game *Game
	}{
		{"Empty history", &Game{ID: "123", History: []Board{}}},
		{"Nil history", &Game{ID: "123"}},
		{"Cursor past the end", &Game{ID: "123", History: []Board{{}}, CurrentMove: 1}},
		{"Negative cursor", &Game{ID: "123", History: []Board{{}}, CurrentMove: -1}},
		{"Unknown mark", &Game{ID: "123", History: []Board{{}, {"Z"}}, CurrentMove: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: validating a broken game
			err := tt.game.Validate()

			// Then: ErrCorruptGame is returned
			assert.ErrorIs(t, err, ErrCorruptGame)
		})
	}
}
