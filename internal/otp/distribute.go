package otp

// Dismisser closes the input surface (on-screen keyboard, focused field).
type Dismisser interface {
	Dismiss()
}

// DismissFunc adapts a function to Dismisser.
type DismissFunc func()

// Dismiss calls f.
func (f DismissFunc) Dismiss() {
	if f != nil {
		f()
	}
}

// Distributor spreads a multi-character string across every slot.
type Distributor struct {
	store   *Store
	dismiss Dismisser
}

// NewDistributor creates a distributor writing to store.
func NewDistributor(store *Store, dismiss Dismisser) *Distributor {
	return &Distributor{store: store, dismiss: dismiss}
}

// Distribute dismisses the input surface and fills the slots from raw.
func (d *Distributor) Distribute(raw string) {
	if d.dismiss != nil {
		d.dismiss.Dismiss()
	}
	d.store.Dispatch(SetFullCode{Code: raw})
}
