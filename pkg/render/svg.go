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

package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/Thiagos25/llm-chess-arena/pkg/match"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

const (
	squareSize = 60
	margin     = 20
	boardSize  = 8*squareSize + 2*margin
)

var glyphs = map[byte]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
}

// SVG keeps an image of the latest position in a file, which is replaced
// after every move so that any image viewer can follow the game.
type SVG struct {
	path string
}

var _ match.Renderer = (*SVG)(nil)

func NewSVG(path string) *SVG {
	return &SVG{path: path}
}

func (svgFile *SVG) Render(pos games.Position, lastMove string) error {
	board, err := games.Squares(pos.FEN())
	if err != nil {
		return err
	}

	var image bytes.Buffer
	DrawSVG(&image, board, pos.SideToMove(), lastMove)

	// write to a sibling file first so viewers never see half an image
	file, err := os.CreateTemp(filepath.Dir(svgFile.path), ".board-*.svg")
	if err != nil {
		return err
	}

	defer os.Remove(file.Name())

	if _, err := file.Write(image.Bytes()); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(file.Name(), svgFile.path)
}

// DrawSVG draws the given board on w.
func DrawSVG(w io.Writer, board [8][8]byte, toMove games.Color, lastMove string) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize+margin)

	canvas.Rect(0, 0, boardSize, boardSize+margin, "fill:white")

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			x, y := margin+f*squareSize, margin+r*squareSize

			fill := "fill:#b58863"
			if (r+f)%2 == 0 {
				fill = "fill:#f0d9b5"
			}

			canvas.Rect(x, y, squareSize, squareSize, fill)

			if glyph, ok := glyphs[board[r][f]]; ok {
				canvas.Text(
					x+squareSize/2, y+squareSize*3/4, glyph,
					"font-size:44px;text-anchor:middle;fill:black",
				)
			}
		}

		canvas.Text(margin/2, margin+r*squareSize+squareSize/2, fmt.Sprint(8-r), "font-size:12px;text-anchor:middle")
	}

	for f := 0; f < 8; f++ {
		canvas.Text(margin+f*squareSize+squareSize/2, boardSize-margin/3, string(rune('a'+f)), "font-size:12px;text-anchor:middle")
	}

	caption := fmt.Sprintf("%s to move", toMove)
	if lastMove != "" {
		caption = fmt.Sprintf("Last move: %s, %s", lastMove, caption)
	}

	canvas.Text(boardSize/2, boardSize+margin/2, caption, "font-size:14px;text-anchor:middle")
	canvas.End()
}
