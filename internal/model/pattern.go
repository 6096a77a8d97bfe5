package model

// PatternStrength tiers a pattern by how many distinct platforms back it.
type PatternStrength string

const (
	StrengthEmerging    PatternStrength = "emerging"    // Single platform
	StrengthGrowing     PatternStrength = "growing"     // Exactly two platforms
	StrengthEstablished PatternStrength = "established" // Three or more platforms
)

// Pattern is a cross-source topic cluster: a keyword corroborated by at
// least two evidence items, with the strongest supporting evidence attached.
// Within one synthesis result no two patterns share an evidence URL.
type Pattern struct {
	Keyword  string          `json:"keyword"`
	Strength PatternStrength `json:"strength"`
	Sources  []string        `json:"sources"`
	Evidence []EvidenceItem  `json:"evidence"` // Top items by engagement, at most five
}
