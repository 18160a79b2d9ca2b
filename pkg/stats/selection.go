package stats

// ToggleSelection flips the selection of a manga (in every category it is
// filed under) and makes it the range anchor.
func (s State) ToggleSelection(key EntryKey) State {
	s = s.mapItems(func(e Entry) Entry {
		if e.MangaID() == key.MangaID {
			e.Selected = !e.Selected
		}
		return e
	})
	s.Anchor = &key
	return s
}

// RangeSelection selects every entry between the anchor and key, both
// included, in on-screen order. Without a visible anchor it behaves like
// ToggleSelection. The clicked entry becomes the new anchor.
func (s State) RangeSelection(key EntryKey) State {
	if s.Anchor == nil {
		return s.ToggleSelection(key)
	}
	ordered := s.Ordered()
	from, to := indexOf(ordered, *s.Anchor), indexOf(ordered, key)
	if from < 0 || to < 0 {
		return s.ToggleSelection(key)
	}
	if from > to {
		from, to = to, from
	}

	toSelect := ids(ordered[from : to+1])
	s = s.mapItems(func(e Entry) Entry {
		if _, ok := toSelect[e.MangaID()]; ok {
			e.Selected = true
		}
		return e
	})
	s.Anchor = &key
	return s
}

// SetAllSelection selects or clears every visible entry. Hidden entries keep
// their selection.
func (s State) SetAllSelection(selected bool) State {
	visible := ids(s.Visible())
	return s.mapItems(func(e Entry) Entry {
		if _, ok := visible[e.MangaID()]; ok {
			e.Selected = selected
		}
		return e
	})
}

// InvertSelection flips every visible entry.
func (s State) InvertSelection() State {
	visible := ids(s.Visible())
	return s.mapItems(func(e Entry) Entry {
		if _, ok := visible[e.MangaID()]; ok {
			e.Selected = !e.Selected
		}
		return e
	})
}

// ToggleGroupSelection flips every member of a group; the last member
// becomes the anchor.
func (s State) ToggleGroupSelection(members []Entry) State {
	if len(members) == 0 {
		return s
	}
	toggle := ids(members)
	s = s.mapItems(func(e Entry) Entry {
		if _, ok := toggle[e.MangaID()]; ok {
			e.Selected = !e.Selected
		}
		return e
	})
	last := members[len(members)-1].Key()
	s.Anchor = &last
	return s
}

// ToggleExpanded opens or closes the detail view of one row.
func (s State) ToggleExpanded(key EntryKey) State {
	return s.mapItems(func(e Entry) Entry {
		if e.Key() == key {
			e.Expanded = !e.Expanded
		}
		return e
	})
}

// MarkDeleted zeroes the downloads of the given manga and clears the
// selection of the visible entries.
func (s State) MarkDeleted(mangaIDs map[int64]struct{}) State {
	s = s.SetAllSelection(false)
	return s.mapItems(func(e Entry) Entry {
		if _, ok := mangaIDs[e.MangaID()]; ok {
			e.FolderSize = 0
			e.ChapterCount = 0
			e.Selected = false
		}
		return e
	})
}

// indexOf finds key, falling back to the manga's first row when the exact
// category row is hidden by de-duplication.
func indexOf(entries []Entry, key EntryKey) int {
	fallback := -1
	for i, e := range entries {
		if e.Key() == key {
			return i
		}
		if fallback < 0 && e.MangaID() == key.MangaID {
			fallback = i
		}
	}
	return fallback
}
