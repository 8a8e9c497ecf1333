package scenes

import (
	"github.com/gonewx/chainreact/pkg/game"
)

// Scene is a type alias for game.Scene so callers only need this package.
type Scene = game.Scene

var _ game.Saveable = (*ChainScene)(nil)
