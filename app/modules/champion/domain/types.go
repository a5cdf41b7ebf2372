// Package championdomain holds the champion catalog and roster types.
package championdomain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const (
	MinStars = 0
	MaxStars = 7
	MinRank  = 1
	MaxRank  = 6
)

// Classes lists the champion classes the catalog accepts.
var Classes = []string{"cosmic", "mutant", "mystic", "science", "skill", "tech"}

// IsValidClass reports whether class is one of Classes.
func IsValidClass(class string) bool {
	return slices.Contains(Classes, class)
}

// Rarity renders the display form of a stars/rank pair, e.g. "6r3". It is for
// display only; comparisons go through Level.
func Rarity(stars, rank int) string {
	return fmt.Sprintf("%dr%d", stars, rank)
}

// Level is the comparable rarity of a roster entry.
type Level struct {
	Stars int
	Rank  int
}

// Compare orders levels by stars, then rank. It returns -1, 0 or +1.
func (l Level) Compare(other Level) int {
	switch {
	case l.Stars != other.Stars:
		return cmpInt(l.Stars, other.Stars)
	default:
		return cmpInt(l.Rank, other.Rank)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Champion is the public view of a catalog entry.
type Champion struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Class     string    `json:"class"`
	Alias     *string   `json:"alias,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SevenStar bool      `json:"seven_star"`
}

// RosterEntry is one champion a game account holds at a given level.
type RosterEntry struct {
	ID            uuid.UUID `json:"id"`
	GameAccountID uuid.UUID `json:"game_account_id"`
	Champion      Champion  `json:"champion"`
	Stars         int       `json:"stars"`
	Rank          int       `json:"rank"`
	Signature     int       `json:"signature"`
	Rarity        string    `json:"rarity"`
}

// ValidateLevel checks stars, rank and signature against the catalog limits.
// sevenStar reports whether the champion exists at seven stars.
func ValidateLevel(stars, rank, signature int, sevenStar bool) error {
	if stars < MinStars || stars > MaxStars {
		return fmt.Errorf("stars must be between %d and %d", MinStars, MaxStars)
	}
	if rank < MinRank || rank > MaxRank {
		return fmt.Errorf("rank must be between %d and %d", MinRank, MaxRank)
	}
	if signature < 0 {
		return fmt.Errorf("signature must not be negative")
	}
	if stars == MaxStars && !sevenStar {
		return fmt.Errorf("champion is not available at %d stars", MaxStars)
	}
	return nil
}
