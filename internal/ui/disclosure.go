package ui

// DisclosureState is the "show more projects" flag.
type DisclosureState struct {
	ShowExtra bool
}

// Disclosure toggles the secondary projects block.
type Disclosure struct {
	state DisclosureState
}

func NewDisclosure(state DisclosureState) *Disclosure {
	return &Disclosure{state: state}
}

func (d *Disclosure) State() DisclosureState { return d.state }

// Toggle flips whether the extra block is rendered.
func (d *Disclosure) Toggle() {
	d.state.ShowExtra = !d.state.ShowExtra
}

// Label is the caption of the control that triggers Toggle.
func (d *Disclosure) Label() string {
	if d.state.ShowExtra {
		return "Hide More Projects"
	}
	return "Show More Projects"
}
