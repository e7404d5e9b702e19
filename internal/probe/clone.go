package probe

// Clone deep-copies a probe, including every slice field, so a
// snapshot taken of it is unaffected by later in-place mutation of the
// live probe, mirroring a snapshot that copies the probe table into a
// buffered record.
func (p *Probe) Clone() *Probe {
	c := *p

	c.Quirks = append([]string(nil), p.Quirks...)
	c.Catchphrases = append([]string(nil), p.Catchphrases...)
	c.Values = append([]string(nil), p.Values...)
	c.EarthMemories = append([]string(nil), p.EarthMemories...)
	c.Memories = append([]Memory(nil), p.Memories...)
	c.Goals = append([]Goal(nil), p.Goals...)
	c.Relationships = append([]Relationship(nil), p.Relationships...)

	return &c
}
