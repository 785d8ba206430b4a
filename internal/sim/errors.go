package sim

import "errors"

// Command errors. Rejections inside a tick are EventNotice events instead.
var (
	ErrNoPendingChoice = errors.New("sim: no age-up choice pending")
	ErrNotOffered      = errors.New("sim: item not offered")
	ErrUnknownItem     = errors.New("sim: unknown item")
	ErrNotEnoughGold   = errors.New("sim: not enough gold")
	ErrNotOwned        = errors.New("sim: item not owned")
	ErrGameOver        = errors.New("sim: player is dead")
)
