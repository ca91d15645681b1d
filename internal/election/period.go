package election

import (
	"context"

	"dafi.es/dafibot/internal/persistence"
)

// PeriodKey is the persistence key of the election period flag.
const PeriodKey = "elections_active"

// Period is the global on/off election window. Writes are last-write-wins.
type Period struct {
	store persistence.Store
}

func NewPeriod(store persistence.Store) *Period {
	return &Period{store: store}
}

// Active reports whether the period is open. A flag that was never written is inactive.
func (p *Period) Active(ctx context.Context) (bool, error) {
	return persistence.GetBool(ctx, p.store, PeriodKey, false)
}

// Set moves the period to the given state. Asking for the current state
// changes nothing and returns ErrAlreadyActive or ErrAlreadyInactive.
func (p *Period) Set(ctx context.Context, active bool) error {
	current, err := p.Active(ctx)
	if err != nil {
		return err
	}
	if current == active {
		if active {
			return ErrAlreadyActive
		}
		return ErrAlreadyInactive
	}
	return persistence.SetBool(ctx, p.store, PeriodKey, active)
}
