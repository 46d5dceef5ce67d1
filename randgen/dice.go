package randgen

import (
	"fmt"
	"strconv"
	"strings"
)

// DiceExpr is a parsed "NdM+K" damage expression, e.g. "2d6+1" means roll
// two six-sided dice and add 1. K may be omitted or negative.
type DiceExpr struct {
	Count    int
	Sides    int
	Modifier int
}

// ParseDiceExpr parses strings of the form "NdM", "NdM+K", or "NdM-K".
// A bare integer like "3" is accepted as a flat, dice-less modifier.
func ParseDiceExpr(expr string) (DiceExpr, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return DiceExpr{}, fmt.Errorf("empty dice expression")
	}

	dIdx := strings.IndexByte(expr, 'd')
	if dIdx < 0 {
		flat, err := strconv.Atoi(expr)
		if err != nil {
			return DiceExpr{}, fmt.Errorf("invalid dice expression %q: %w", expr, err)
		}
		return DiceExpr{Count: 0, Sides: 0, Modifier: flat}, nil
	}

	countStr := expr[:dIdx]
	rest := expr[dIdx+1:]

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return DiceExpr{}, fmt.Errorf("invalid dice count in %q: %w", expr, err)
	}

	sidesStr := rest
	modifier := 0
	if plusIdx := strings.IndexByte(rest, '+'); plusIdx >= 0 {
		sidesStr = rest[:plusIdx]
		modifier, err = strconv.Atoi(rest[plusIdx+1:])
		if err != nil {
			return DiceExpr{}, fmt.Errorf("invalid modifier in %q: %w", expr, err)
		}
	} else if minusIdx := strings.IndexByte(rest, '-'); minusIdx >= 0 {
		sidesStr = rest[:minusIdx]
		modifier, err = strconv.Atoi(rest[minusIdx+1:])
		if err != nil {
			return DiceExpr{}, fmt.Errorf("invalid modifier in %q: %w", expr, err)
		}
		modifier = -modifier
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return DiceExpr{}, fmt.Errorf("invalid dice sides in %q: %w", expr, err)
	}

	if count < 0 || sides < 0 {
		return DiceExpr{}, fmt.Errorf("dice expression %q has negative count/sides", expr)
	}

	return DiceExpr{Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParseDiceExpr is ParseDiceExpr, panicking on error. Reserved for
// constant weapon-table initialization where the string is a compile-time
// literal and a parse failure is a programming bug, not runtime data.
func MustParseDiceExpr(expr string) DiceExpr {
	d, err := ParseDiceExpr(expr)
	if err != nil {
		panic(err)
	}
	return d
}

// Roll samples the expression using s, rolling Count dice of Sides faces
// and adding Modifier. A Sides of 0 just returns Modifier.
func (d DiceExpr) Roll(s *Source) int {
	total := d.Modifier
	for i := 0; i < d.Count && d.Sides > 0; i++ {
		total += s.GetDiceRoll(d.Sides)
	}
	return total
}

// String renders the expression back to "NdM+K" form.
func (d DiceExpr) String() string {
	if d.Sides == 0 {
		return strconv.Itoa(d.Modifier)
	}
	base := fmt.Sprintf("%dd%d", d.Count, d.Sides)
	if d.Modifier > 0 {
		return fmt.Sprintf("%s+%d", base, d.Modifier)
	}
	if d.Modifier < 0 {
		return fmt.Sprintf("%s%d", base, d.Modifier)
	}
	return base
}
