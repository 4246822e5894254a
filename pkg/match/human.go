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

package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// HumanPlayer reads moves typed by a person. A human is assumed to be
// always available, so it is asked again as many times as needed.
type HumanPlayer struct {
	name   string
	input  LineReader
	output io.Writer
}

var _ Player = (*HumanPlayer)(nil)

func NewHumanPlayer(name string, input LineReader, output io.Writer) *HumanPlayer {
	if output == nil {
		output = io.Discard
	}

	return &HumanPlayer{name: name, input: input, output: output}
}

func (human *HumanPlayer) Name() string { return human.name }
func (human *HumanPlayer) Kind() Kind   { return Human }

func (human *HumanPlayer) Propose(ctx context.Context, proposal Proposal) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if proposal.Retry {
		color.New(color.FgRed).Fprintln(human.output, "Invalid move, try again.")
	}

	fmt.Fprintf(
		human.output,
		"%s (%s), enter your move in SAN (valid moves: %s)\n",
		color.New(color.FgCyan).Sprint(human.name),
		proposal.Side,
		strings.Join(proposal.Legal, " "),
	)

	line, err := human.input.Readline()
	switch {
	case err == nil:
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrQuit
	case errors.Is(err, io.EOF):
		return "", ErrInputClosed
	default:
		return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
	}

	// leaving is not resigning, the game stays undecided
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "quit", "exit":
		return "", ErrQuit
	}

	return line, nil
}
