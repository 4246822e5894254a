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
	"github.com/hashicorp/go-multierror"

	"github.com/Thiagos25/llm-chess-arena/pkg/match"
	"github.com/Thiagos25/llm-chess-arena/pkg/match/games"
)

// Multi renders every position with all of its renderers, even when some
// of them fail.
type Multi []match.Renderer

var _ match.Renderer = Multi(nil)

func (renderers Multi) Render(pos games.Position, lastMove string) error {
	var result *multierror.Error
	for _, renderer := range renderers {
		if err := renderer.Render(pos, lastMove); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
