package template

// SectionPatch is a partial update for UpdateSection. Nil fields are left
// unchanged; non-nil fields replace the section's value.
type SectionPatch struct {
	Type     *SectionType `json:"type,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Size     *Dimensions  `json:"size,omitempty"`
	Style    *Style       `json:"style,omitempty"`
	ZIndex   *int         `json:"zIndex,omitempty"`
}

// apply returns s with the patch merged in.
func (p SectionPatch) apply(s Section) Section {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.Size != nil {
		s.Size = *p.Size
	}
	if p.Style != nil {
		s.Style = *p.Style
		s = s.clone()
	}
	if p.ZIndex != nil {
		s.ZIndex = *p.ZIndex
	}
	return s
}

// AddSection appends a new section of type typ with default geometry and
// style. It is stacked above every existing section and clamped into the card.
func AddSection(t Template, typ SectionType) Template {
	s := DefaultSection(typ)
	s.ID = newID()
	s.ZIndex = nextZIndex(t.Sections)

	out := t.Clone()
	out.Sections = append(out.Sections, Clamp(s))
	out.UpdatedAt = now()
	return out
}

// nextZIndex returns one above the highest ZIndex, or 0 for no sections.
func nextZIndex(sections []Section) int {
	if len(sections) == 0 {
		return 0
	}
	top := sections[0].ZIndex
	for _, s := range sections[1:] {
		top = max(top, s.ZIndex)
	}
	return top + 1
}

// UpdateSection merges patch into the section with the given id and re-clamps
// it. An unknown id leaves the sections unchanged; only UpdatedAt moves.
func UpdateSection(t Template, id string, patch SectionPatch) Template {
	out := t.Clone()
	for i, s := range out.Sections {
		if s.ID == id {
			out.Sections[i] = Clamp(patch.apply(s))
			break
		}
	}
	out.UpdatedAt = now()
	return out
}

// RemoveSection drops the section with the given id.
func RemoveSection(t Template, id string) Template {
	out := t.Clone()
	kept := out.Sections[:0]
	for _, s := range out.Sections {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	out.Sections = kept
	out.UpdatedAt = now()
	return out
}
