package domain

// Board is a value type: copying it copies every cell.
// Cells are stored row-major, row 0 is the top row.
type Board [Cells]PlayerID

func NewBoard() Board {
	return Board{}
}

func InitialStateString() string {
	return NewBoard().String()
}

func index(col, row int) int {
	return row*Columns + col
}

func inBounds(col, row int) bool {
	return col >= 0 && col < Columns && row >= 0 && row < Rows
}

// ParseBoard reads a 42 character board. Nothing is applied unless the whole
// string is valid.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != Cells {
		return b, ErrMalformedBoard
	}
	for i := 0; i < Cells; i++ {
		switch s[i] {
		case '0':
			b[i] = Empty
		case '1':
			b[i] = Player1
		case '2':
			b[i] = Player2
		default:
			return Board{}, ErrMalformedBoard
		}
	}
	return b, nil
}

func (b Board) String() string {
	out := make([]byte, Cells)
	for i, p := range b {
		out[i] = p.Symbol()
	}
	return string(out)
}

func (b *Board) At(col, row int) PlayerID {
	if !inBounds(col, row) {
		return Empty
	}
	return b[index(col, row)]
}

func (b *Board) Set(col, row int, p PlayerID) {
	b[index(col, row)] = p
}

// LowestEmptyRow returns the row a piece dropped in col lands on, or -1 when
// the column is full or does not exist.
func (b *Board) LowestEmptyRow(col int) int {
	if col < 0 || col >= Columns {
		return -1
	}
	// row 0 -> top and 5 -> bottom
	for row := Rows - 1; row >= 0; row-- {
		if b[index(col, row)] == Empty {
			return row
		}
	}
	return -1
}

func (b *Board) IsColumnFull(col int) bool {
	if col < 0 || col >= Columns {
		return true
	}
	return b[index(col, 0)] != Empty
}

func (b *Board) Drop(col int, p PlayerID) (int, error) {
	if col < 0 || col >= Columns {
		return -1, ErrColumnOutOfRange
	}
	row := b.LowestEmptyRow(col)
	if row < 0 {
		return -1, ErrColumnFull
	}
	b[index(col, row)] = p
	return row, nil
}

// Undo clears the cell filled by a previous Drop.
func (b *Board) Undo(col, row int) {
	b[index(col, row)] = Empty
}

func (b *Board) ValidMoves() []int {
	moves := []int{}
	for col := 0; col < Columns; col++ {
		if !b.IsColumnFull(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) PieceCount(p PlayerID) int {
	n := 0
	for _, c := range b {
		if c == p {
			n++
		}
	}
	return n
}

// CheckGravity reports ErrFloatingPiece when an occupied cell sits above an
// empty one.
func (b *Board) CheckGravity() error {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if b.At(col, row) != Empty && b.At(col, row+1) == Empty {
				return ErrFloatingPiece
			}
		}
	}
	return nil
}

// Grid converts the board to rows of ints for JSON responses.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for row := 0; row < Rows; row++ {
		grid[row] = make([]int, Columns)
		for col := 0; col < Columns; col++ {
			grid[row][col] = int(b.At(col, row))
		}
	}
	return grid
}

// this counts the number of disks in a specific direction
func (b *Board) CountDirection(col, row, dCol, dRow int, p PlayerID) int {
	count := 0
	c, r := col+dCol, row+dRow
	for inBounds(c, r) && b[index(c, r)] == p {
		count++
		c += dCol
		r += dRow
	}
	return count
}
