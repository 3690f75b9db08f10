package domain

// horizontal, vertical, diagonal \ and diagonal /
var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// CheckWinAt reports whether the piece at (col, row) is part of a line of at
// least ToWin pieces of the same owner.
func (b *Board) CheckWinAt(col, row int) bool {
	player := b.At(col, row)
	if player == Empty {
		return false
	}

	for _, dir := range axes {
		count := 1
		count += b.CountDirection(col, row, dir[0], dir[1], player)
		count += b.CountDirection(col, row, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// Winner scans column by column, top to bottom, and returns the owner of the
// first winning cell, or Empty.
func (b *Board) Winner() PlayerID {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			if b.CheckWinAt(col, row) {
				return b.At(col, row)
			}
		}
	}
	return Empty
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if !b.IsColumnFull(col) {
			return false
		}
	}
	return true
}

// IsDraw only holds when nobody has won.
func (b *Board) IsDraw() bool {
	return b.IsFull() && b.Winner() == Empty
}
