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

// Package archive stores finished games as PGN files, one directory per
// pair of players and one numbered file per game.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/Thiagos25/llm-chess-arena/pkg/common"
	"github.com/Thiagos25/llm-chess-arena/pkg/internal/util"
	"github.com/Thiagos25/llm-chess-arena/pkg/match"
)

// games are saved as <n>_game.pgn
const suffix = "_game.pgn"

// PairDirectory returns the directory holding the games between the given
// players, with White and Black in that order.
func PairDirectory(root, white, black string) string {
	return filepath.Join(root, Sanitize(white)+" vs "+Sanitize(black))
}

// Sanitize makes a player's name usable as part of a file name.
func Sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(name))

	name = strings.Trim(name, ".")
	if name == "" {
		return "_"
	}

	return name
}

// Save writes the record to a new file in its pair directory and returns
// the file's path. Existing games are never overwritten.
func Save(root string, record *match.Record) (string, error) {
	dir := PairDirectory(root, record.White, record.Black)
	if err := common.TryMkdir(dir); err != nil {
		return "", err
	}

	number, err := nextNumber(dir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, strconv.Itoa(number)+suffix)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			// lost a race with another arena, take the next one
			number++
			continue
		}

		if err != nil {
			return "", err
		}

		if _, err := record.WriteTo(file); err != nil {
			file.Close()
			return "", err
		}

		return path, file.Close()
	}
}

// nextNumber returns one more than the largest game number in dir.
func nextNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	largest := 0
	for _, entry := range entries {
		prefix, _, found := strings.Cut(entry.Name(), "_")
		if !found {
			continue
		}

		if n, err := strconv.Atoi(prefix); err == nil && n > largest {
			largest = n
		}
	}

	return largest + 1, nil
}

// Pair is the directory of games between two players.
type Pair struct {
	Name  string
	Dir   string
	Games []string // file names, in natural order
}

// List returns the pair directories under root, in natural order. A
// missing root directory holds no pairs.
func List(root string) ([]Pair, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	util.AlphanumSort(names)

	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		dir := filepath.Join(root, name)

		games, err := Games(dir)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, Pair{Name: name, Dir: dir, Games: games})
	}

	return pairs, nil
}

// Games returns the names of the game files in dir, in natural order.
func Games(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var games []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			games = append(games, entry.Name())
		}
	}

	util.AlphanumSort(games)
	return games, nil
}

// Game is the part of a saved game needed for statistics.
type Game struct {
	White, Black string
	Result       match.Result
	Moves        int
}

// Load reads back a saved game.
func Load(path string) (*Game, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	pgn, err := chess.PGN(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	game := chess.NewGame(pgn)
	return &Game{
		White:  tag(game, "White"),
		Black:  tag(game, "Black"),
		Result: match.ParseResult(string(game.Outcome())),
		Moves:  len(game.Moves()),
	}, nil
}

func tag(game *chess.Game, key string) string {
	if pair := game.GetTagPair(key); pair != nil {
		return pair.Value
	}

	return ""
}
