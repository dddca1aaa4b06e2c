// internal/domain/form/aggregator.go
package form

// Pair is the validity of both login fields.
type Pair struct {
	Email    Validity
	Password Validity
}

// Settled reports whether both halves are exactly valid.
func (p Pair) Settled() bool {
	return p.Email.True() && p.Password.True()
}

// Aggregator recomputes form validity only after the pair has stopped
// changing for the debouncer's quiet period.
type Aggregator struct {
	debouncer *Debouncer
	onSettle  func(bool)

	pair     Pair
	observed bool
	valid    bool
}

func NewAggregator(d *Debouncer, onSettle func(bool)) *Aggregator {
	if onSettle == nil {
		onSettle = func(bool) {}
	}
	return &Aggregator{
		debouncer: d,
		onSettle:  onSettle,
	}
}

// Observe records the latest pair. A changed pair, or the first one
// observed, reschedules the recomputation.
func (a *Aggregator) Observe(p Pair) {
	if a.observed && p == a.pair {
		return
	}
	a.pair = p
	a.observed = true
	a.debouncer.Schedule(a.settle)
}

func (a *Aggregator) settle() {
	a.valid = a.pair.Settled()
	a.onSettle(a.valid)
}

// Valid is the last settled form validity. It is false until the first
// recomputation runs.
func (a *Aggregator) Valid() bool {
	return a.valid
}

func (a *Aggregator) Pending() bool {
	return a.debouncer.Pending()
}

// Stop cancels any pending recomputation. A cancelled recomputation
// never runs.
func (a *Aggregator) Stop() {
	a.debouncer.Cancel()
}
