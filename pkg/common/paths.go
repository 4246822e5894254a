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

package common

import (
	"errors"
	"io/fs"
	"os"
)

// TryMkdir creates dir and its parents if it doesn't exist yet.
func TryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, Permissions)
	}

	return nil
}

// TryCreate writes data to file if it doesn't exist yet. Existing files
// are never overwritten.
func TryCreate(file string, data []byte) error {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		return os.WriteFile(file, data, 0644)
	}

	return nil
}

// Setup creates the arena's home directory with its default contents.
func Setup() error {
	if err := TryMkdir(Directory); err != nil {
		return err
	}

	if err := TryMkdir(GamesDirectory); err != nil {
		return err
	}

	return TryCreate(ConfigFile, BaseConfigFile)
}
