package vcfc

// LineState names the section of a VCF file a stream is currently in.
type LineState int

const (
	StateUninitialized LineState = iota
	StateMeta
	StateHeader
	StateVariant
)

// LineStateMachine enforces the section order of a VCF file: metadata lines,
// then exactly one header line, then variant lines. Transitions never move
// backwards and the header may not repeat.
type LineStateMachine struct {
	current LineState
}

func (m *LineStateMachine) ToMeta() error {
	if m.current == StateMeta {
		return nil
	}
	if m.current == StateHeader || m.current == StateVariant {
		return validationErrorf("cannot move to line state META")
	}
	m.current = StateMeta
	return nil
}

func (m *LineStateMachine) ToHeader() error {
	if m.current == StateHeader || m.current == StateVariant {
		return validationErrorf("cannot move to line state HEADER")
	}
	m.current = StateHeader
	return nil
}

func (m *LineStateMachine) ToVariant() error {
	if m.current == StateVariant {
		return nil
	}
	if m.current != StateHeader {
		return validationErrorf("cannot move to line state VARIANT")
	}
	m.current = StateVariant
	return nil
}

func (m *LineStateMachine) State() LineState {
	return m.current
}
