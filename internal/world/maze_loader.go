package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	// ErrEmptyMaze is returned when the maze source has no rows.
	ErrEmptyMaze = errors.New("maze contains no rows")
	// ErrUnknownCell is returned for a symbol that is not a known cell kind.
	ErrUnknownCell = errors.New("unknown cell symbol")
)

// LoadMaze reads a maze text file.
func LoadMaze(path string) (Maze, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze file %s: %w", path, err)
	}
	defer file.Close()

	maze, err := ParseMaze(file)
	if err != nil {
		return nil, fmt.Errorf("maze file %s: %w", path, err)
	}
	log.Printf("[Maze] Loaded %s (%d rows, widest %d)", path, maze.Rows(), maze.MaxCols())
	return maze, nil
}

// ParseMaze reads one maze row per line. Lines starting with '#' are comments.
// Blank lines inside the maze are kept as empty rows; trailing blank lines are dropped.
func ParseMaze(r io.Reader) (Maze, error) {
	var maze Maze
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}

		row := make([]CellKind, 0, len(line))
		col := 0
		for _, symbol := range line {
			kind, ok := ParseCell(symbol)
			if !ok {
				return nil, fmt.Errorf("line %d column %d: %w %q", lineNo, col+1, ErrUnknownCell, symbol)
			}
			row = append(row, kind)
			col++
		}
		maze = append(maze, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading maze: %w", err)
	}

	for len(maze) > 0 && len(maze[len(maze)-1]) == 0 {
		maze = maze[:len(maze)-1]
	}
	if len(maze) == 0 {
		return nil, ErrEmptyMaze
	}
	return maze, nil
}

// String renders the maze back to its text form.
func (m Maze) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, kind := range row {
			sb.WriteRune(kind.Symbol())
		}
	}
	return sb.String()
}
