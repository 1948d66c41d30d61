// Package models holds the plain data shapes shared between the puzzle
// core and its encoders. It intentionally carries only the puzzle-at-rest
// shape the spec's core needs for import/export; the original's account,
// room, and realtime-session shapes belong to the UI/server shell this
// repository does not implement.
package models

import "time"

// Difficulty levels for puzzles.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Puzzle represents a crossword puzzle at rest: a filled grid plus its
// authored clues and publication metadata. This is the shape the output
// encoders (.puz, ipuz, json) and the generator coordinator exchange.
type Puzzle struct {
	ID          string       `json:"id"`
	Date        *string      `json:"date,omitempty"` // YYYY-MM-DD, null for archive-only
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Copyright   string       `json:"copyright,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Difficulty  Difficulty   `json:"difficulty"`
	GridWidth   int          `json:"gridWidth"`
	GridHeight  int          `json:"gridHeight"`
	Grid        [][]GridCell `json:"grid"`
	CluesAcross []Clue       `json:"cluesAcross"`
	CluesDown   []Clue       `json:"cluesDown"`
	Theme       *string      `json:"theme,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
	Status      string       `json:"status"` // draft, approved, published
}

// GridCell represents a single cell in the puzzle grid.
type GridCell struct {
	Letter    *string `json:"letter"` // null = black square
	Number    *int    `json:"number,omitempty"`
	IsCircled bool    `json:"isCircled,omitempty"`
	Rebus     *string `json:"rebus,omitempty"` // for rebus puzzles
}

// Clue represents a single clue.
type Clue struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	PositionX int    `json:"positionX"` // starting cell column
	PositionY int    `json:"positionY"` // starting cell row
	Length    int    `json:"length"`
	Direction string `json:"direction"` // "across" or "down"
}
