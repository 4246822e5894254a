// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render contains the sinks which display a match's positions.
// Renderers only ever read positions; they play no part in the game.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Thiagos25/llm-chess-arena/pkg/match"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

type Theme string

const (
	ThemeOff   Theme = "off"
	ThemeBrown Theme = "brown"
	ThemeGreen Theme = "green"
	ThemeGray  Theme = "gray"
)

type themeColors struct {
	light []color.Attribute
	dark  []color.Attribute
}

// 256 color backgrounds, as SGR parameters
var themes = map[Theme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		light: []color.Attribute{48, 5, 230}, // Beige
		dark:  []color.Attribute{48, 5, 94},  // Brown
	},
	ThemeGreen: {
		light: []color.Attribute{48, 5, 157}, // Light green
		dark:  []color.Attribute{48, 5, 22},  // Dark green
	},
	ThemeGray: {
		light: []color.Attribute{48, 5, 251}, // Light gray
		dark:  []color.Attribute{48, 5, 240}, // Dark gray
	},
}

var (
	whitePiece = []color.Attribute{color.FgHiWhite, color.Bold}
	blackPiece = []color.Attribute{color.FgBlack}
)

// Terminal draws boards as text, optionally with coloured squares.
type Terminal struct {
	output io.Writer
	theme  Theme
}

var _ match.Renderer = (*Terminal)(nil)

func NewTerminal(output io.Writer, theme Theme) (*Terminal, error) {
	if theme == "" {
		theme = ThemeOff
	}

	if _, ok := themes[theme]; !ok {
		return nil, fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}

	return &Terminal{output: output, theme: theme}, nil
}

func (terminal *Terminal) Render(pos games.Position, lastMove string) error {
	board, err := games.Squares(pos.FEN())
	if err != nil {
		return err
	}

	var sb strings.Builder

	if lastMove != "" {
		fmt.Fprintf(&sb, "\nLast move: %s\n", lastMove)
	}

	sb.WriteString("\n  a b c d e f g h\n")
	for r := 0; r < 8; r++ {
		fmt.Fprintf(&sb, "%d ", 8-r)
		for f := 0; f < 8; f++ {
			sb.WriteString(terminal.square(board[r][f], (r+f)%2 == 0))
		}
		fmt.Fprintf(&sb, " %d\n", 8-r)
	}
	sb.WriteString("  a b c d e f g h\n\n")

	fmt.Fprintf(&sb, "%s to move\n", pos.SideToMove())

	_, err = io.WriteString(terminal.output, sb.String())
	return err
}

func (terminal *Terminal) square(piece byte, light bool) string {
	if terminal.theme == ThemeOff {
		if piece == 0 {
			return ". "
		}

		return string(piece) + " "
	}

	theme := themes[terminal.theme]
	bg := theme.dark
	if light {
		bg = theme.light
	}

	if piece == 0 {
		return color.New(bg...).Sprint("  ")
	}

	fg := blackPiece
	if piece >= 'A' && piece <= 'Z' {
		fg = whitePiece
	}

	return color.New(bg...).Add(fg...).Sprintf("%c ", piece)
}
