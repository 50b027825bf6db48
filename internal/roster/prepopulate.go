package roster

// Prepopulate returns entries unchanged unless the batch is empty, in which case it
// offers teamSize-1 blank invitee slots. The acting founder is never part of the batch.
// Team sizes of 0 or 1 yield no slots.
func Prepopulate(entries []Entry, teamSize int) []Entry {
	if len(entries) > 0 {
		return entries
	}

	slots := max(teamSize-1, 0)
	blank := make([]Entry, slots)
	for i := range blank {
		blank[i] = NewEntry{}
	}
	return blank
}
