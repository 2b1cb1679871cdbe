package vcfc

import "testing"

func TestLineStateMachineForwardOrder(t *testing.T) {
	var m LineStateMachine
	if err := m.ToMeta(); err != nil {
		t.Fatalf("ToMeta from uninitialized: %v", err)
	}
	if err := m.ToMeta(); err != nil {
		t.Fatalf("repeated ToMeta: %v", err)
	}
	if err := m.ToHeader(); err != nil {
		t.Fatalf("ToHeader after meta: %v", err)
	}
	if err := m.ToVariant(); err != nil {
		t.Fatalf("ToVariant after header: %v", err)
	}
	if err := m.ToVariant(); err != nil {
		t.Fatalf("repeated ToVariant: %v", err)
	}
	if m.State() != StateVariant {
		t.Fatalf("state: got %d want %d", m.State(), StateVariant)
	}
}

func TestLineStateMachineGuards(t *testing.T) {
	// the header line may not repeat
	var m LineStateMachine
	m.ToMeta()
	m.ToHeader()
	if err := m.ToHeader(); err == nil {
		t.Fatalf("expected an error repeating the header state")
	}

	// metadata may not follow the header
	var m2 LineStateMachine
	m2.ToMeta()
	m2.ToHeader()
	if err := m2.ToMeta(); err == nil {
		t.Fatalf("expected an error moving back to metadata")
	}

	// variants may only follow the header
	var m3 LineStateMachine
	if err := m3.ToVariant(); err == nil {
		t.Fatalf("expected an error moving straight to variants")
	}
	m3.ToMeta()
	if err := m3.ToVariant(); err == nil {
		t.Fatalf("expected an error moving from metadata to variants")
	}
}

func TestSampleCountFromColumns(t *testing.T) {
	cases := []struct {
		columns int
		want    int
	}{
		{8, 0},  // no FORMAT column, no samples
		{9, 0},  // FORMAT column present, no samples
		{10, 1},
		{13, 4},
		{2009, 2000},
	}
	for _, tc := range cases {
		if got := SampleCountFromColumns(tc.columns); got != tc.want {
			t.Fatalf("SampleCountFromColumns(%d): got %d want %d", tc.columns, got, tc.want)
		}
	}
}
