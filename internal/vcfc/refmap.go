package vcfc

import "fmt"

// canonical chromosome names, in id order; ids start at 1
var reference_names = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
	"13", "14", "15", "16", "17", "18", "19", "20", "21", "22",
	"X", "Y", "M",
}

// ReferenceNameMap assigns each canonical chromosome name the small integer
// id used by the sparse placement function.
type ReferenceNameMap struct {
	n_map map[string]uint8
}

func NewReferenceNameMap() *ReferenceNameMap {
	n_map := make(map[string]uint8, len(reference_names))
	ref_map_val := uint8(1)
	for _, name := range reference_names {
		n_map[name] = ref_map_val
		ref_map_val++
	}
	return &ReferenceNameMap{n_map: n_map}
}

// ReferenceToInt returns the id for a reference name. Names outside the
// canonical set are an error; letting them silently collide into id 0 would
// overlap records from different chromosomes in a sparse file.
func (m *ReferenceNameMap) ReferenceToInt(reference_name string) (uint8, error) {
	id, ok := m.n_map[reference_name]
	if !ok {
		return 0, fmt.Errorf("unknown reference name %q", reference_name)
	}
	return id, nil
}
