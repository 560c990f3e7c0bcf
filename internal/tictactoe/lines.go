package tictactoe

import "github.com/rocketscienceinc/mnk-tictactoe/internal/entity"

// Lines returns every row, every column and every diagonal of board that is
// long enough to hold a run of k. Order: rows, columns, main diagonals, anti
// diagonals.
func Lines(board *entity.Board, k int) [][]entity.Cell {
	rows, cols := board.Rows(), board.Cols()
	grid := board.Cells()

	lines := make([][]entity.Cell, 0, rows+cols+2*(rows+cols-1))

	for row := 0; row < rows; row++ {
		lines = append(lines, grid[row])
	}

	for col := 0; col < cols; col++ {
		line := make([]entity.Cell, rows)
		for row := 0; row < rows; row++ {
			line[row] = grid[row][col]
		}
		lines = append(lines, line)
	}

	// top-left to bottom-right, starting down column 0 then along row 0
	for row := 0; row < rows; row++ {
		lines = appendDiagonal(lines, grid, row, 0, 1, k)
	}
	for col := 1; col < cols; col++ {
		lines = appendDiagonal(lines, grid, 0, col, 1, k)
	}

	// top-right to bottom-left, starting down the last column then back along row 0
	for row := 0; row < rows; row++ {
		lines = appendDiagonal(lines, grid, row, cols-1, -1, k)
	}
	for col := cols - 2; col >= 0; col-- {
		lines = appendDiagonal(lines, grid, 0, col, -1, k)
	}

	return lines
}

// appendDiagonal walks from (row, col) one row down and step columns
// sideways per cell. Diagonals shorter than k are skipped.
func appendDiagonal(lines [][]entity.Cell, grid [][]entity.Cell, row, col, step, k int) [][]entity.Cell {
	var line []entity.Cell
	for r, c := row, col; r < len(grid) && c >= 0 && c < len(grid[r]); r, c = r+1, c+step {
		line = append(line, grid[r][c])
	}

	if len(line) < k {
		return lines
	}

	return append(lines, line)
}
