package main

import (
	"fmt"
	"os"
	"strings"

	"isolation/game"

	"github.com/muesli/termenv"
)

var output = termenv.NewOutput(os.Stdout)

// render prints the board to stdout, players colored, blocked cells dimmed.
func render(s game.State) {
	profile := output.ColorProfile()
	player0 := output.String("0").Foreground(profile.Color("2")).Bold()
	player1 := output.String("1").Foreground(profile.Color("4")).Bold()
	blocked := output.String("#").Faint()

	var sb strings.Builder
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := game.Cell(y*s.Width() + x)
			switch {
			case c == s.Loc(game.Player0):
				sb.WriteString(player0.String())
			case c == s.Loc(game.Player1):
				sb.WriteString(player1.String())
			case s.Open(c):
				sb.WriteByte('.')
			default:
				sb.WriteString(blocked.String())
			}
			if x < s.Width()-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
	fmt.Println()
}
