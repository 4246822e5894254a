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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryMkdir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "arena", "games")

	require.NoError(t, TryMkdir(dir))
	require.NoError(t, TryMkdir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTryCreateKeepsExistingFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, TryCreate(file, []byte("first")))
	require.NoError(t, TryCreate(file, []byte("second")))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestBaseConfigFile(t *testing.T) {
	assert.Contains(t, string(BaseConfigFile), "max-attempts")
}
