package importer

import (
	. "guestlist/internal/models"
)

// SideMapping resolves free-text side labels to canonical slots. It is a
// transient value owned by one import session; canceling the session just
// drops it.
type SideMapping struct {
	Labels     []string             `json:"labels"` // distinct raw labels, first-seen order
	Slots      map[string]GuestSide `json:"slots"`
	PartnerOne string               `json:"partnerOne"` // display names shown next to the slots
	PartnerTwo string               `json:"partnerTwo"`
}

// NewSideMapping builds the default mapping offered to the user: first label
// to partner one, second to partner two, any further labels to partner one
// until the user reassigns them.
func NewSideMapping(labels []string, partnerOne, partnerTwo string) *SideMapping {
	slots := make(map[string]GuestSide, len(labels))
	for i, label := range labels {
		if i == 1 {
			slots[label] = SidePartnerTwo
		} else {
			slots[label] = SidePartnerOne
		}
	}

	return &SideMapping{
		Labels:     labels,
		Slots:      slots,
		PartnerOne: partnerOne,
		PartnerTwo: partnerTwo,
	}
}

// Set reassigns one label. Unknown labels are ignored rather than added, the
// label set is fixed at parse time.
func (m *SideMapping) Set(label string, side GuestSide) {
	if _, ok := m.Slots[label]; ok {
		m.Slots[label] = side
	}
}

// Collision reports whether two distinct labels collapse onto the same slot.
// With a single label any slot is fine; with more than one, the mapping must
// keep the labels distinguishable.
func (m *SideMapping) Collision() bool {
	if len(m.Labels) < 2 {
		return false
	}

	used := make(map[GuestSide]bool, len(m.Labels))
	for _, label := range m.Labels {
		slot := m.Slots[label]
		if used[slot] {
			return true
		}
		used[slot] = true
	}
	return false
}

func (m *SideMapping) collidingSlot() (GuestSide, []string) {
	seen := make(map[GuestSide][]string)
	for _, label := range m.Labels {
		slot := m.Slots[label]
		seen[slot] = append(seen[slot], label)
		if len(seen[slot]) > 1 {
			return slot, seen[slot]
		}
	}
	return "", nil
}

// ApplySideMapping resolves every record's side from its raw label and
// returns a new record list. It refuses to run while the mapping collides,
// mirroring the disabled confirm button in the preview. Records without a
// raw label stay unknown.
func ApplySideMapping(records []ParsedGuest, mapping *SideMapping) ([]ParsedGuest, error) {
	if mapping.Collision() {
		slot, labels := mapping.collidingSlot()
		return nil, &MappingCollisionError{Labels: labels, Slot: string(slot)}
	}

	mapped := make([]ParsedGuest, len(records))
	for i, record := range records {
		if record.RawSide != "" {
			if slot, ok := mapping.Slots[record.RawSide]; ok {
				record.Side = slot
			}
		} else {
			record.Side = SideUnknown
		}
		mapped[i] = record
	}

	return mapped, nil
}
