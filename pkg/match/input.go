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
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader is a synchronous source of input lines.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// NewLineInput returns a readline editor when stdin is a terminal, and a
// plain line scanner otherwise, so that moves may be piped in.
func NewLineInput(historyDir string) (LineReader, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewScannerInput(os.Stdin), nil
	}

	config := &readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	}

	if historyDir != "" {
		config.HistoryFile = filepath.Join(historyDir, ".move_history")
	}

	return readline.NewEx(config)
}

// NewScannerInput returns a LineReader reading lines from r.
func NewScannerInput(r io.Reader) LineReader {
	return &scannerInput{scanner: bufio.NewScanner(r)}
}

type scannerInput struct {
	scanner *bufio.Scanner
}

func (input *scannerInput) Readline() (string, error) {
	if !input.scanner.Scan() {
		if err := input.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return input.scanner.Text(), nil
}

func (input *scannerInput) Close() error {
	return nil
}
