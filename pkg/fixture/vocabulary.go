package fixture

import (
	"fmt"
	"slices"
	"strings"
)

// Default enumerations used by the talent records
var (
	DefaultSkills  = []string{"Python", "Java", "Go", "Rust", "C++", "Kubernetes", "React", "ML", "Data Science"}
	DefaultDegrees = []string{"B.Sc.", "M.Sc.", "PhD"}
	DefaultSchools = []string{"Concordia University", "McGill", "Université de Montréal", "Polytechnique"}
)

const (
	defaultMinSkills   = 2
	defaultMaxSkills   = 5
	defaultIDPrefix    = "talent"
	defaultIDWidth     = 4
	defaultFirstPrefix = "User"
	defaultLastPrefix  = "Test"

	// SkillSeparator joins the sampled skills of one record
	SkillSeparator = ", "
)

// Vocabulary holds the enumerations and naming rules records are drawn from
type Vocabulary struct {
	Skills      []string `yaml:"skills" json:"skills"`
	Degrees     []string `yaml:"degrees" json:"degrees"`
	Schools     []string `yaml:"schools" json:"schools"`
	MinSkills   int      `yaml:"min_skills" json:"min_skills"`
	MaxSkills   int      `yaml:"max_skills" json:"max_skills"`
	IDPrefix    string   `yaml:"id_prefix" json:"id_prefix"`
	IDWidth     int      `yaml:"id_width" json:"id_width"`
	FirstPrefix string   `yaml:"first_prefix" json:"first_prefix"`
	LastPrefix  string   `yaml:"last_prefix" json:"last_prefix"`
}

// DefaultVocabulary returns the vocabulary of the stock args.json fixture
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills:      slices.Clone(DefaultSkills),
		Degrees:     slices.Clone(DefaultDegrees),
		Schools:     slices.Clone(DefaultSchools),
		MinSkills:   defaultMinSkills,
		MaxSkills:   defaultMaxSkills,
		IDPrefix:    defaultIDPrefix,
		IDWidth:     defaultIDWidth,
		FirstPrefix: defaultFirstPrefix,
		LastPrefix:  defaultLastPrefix,
	}
}

// WithDefaults fills every zero field from DefaultVocabulary
func (v Vocabulary) WithDefaults() Vocabulary {
	d := DefaultVocabulary()
	if len(v.Skills) == 0 {
		v.Skills = d.Skills
	}
	if len(v.Degrees) == 0 {
		v.Degrees = d.Degrees
	}
	if len(v.Schools) == 0 {
		v.Schools = d.Schools
	}
	if v.MinSkills == 0 {
		v.MinSkills = d.MinSkills
	}
	if v.MaxSkills == 0 {
		v.MaxSkills = min(d.MaxSkills, len(v.Skills))
	}
	if v.IDPrefix == "" {
		v.IDPrefix = d.IDPrefix
	}
	if v.IDWidth == 0 {
		v.IDWidth = d.IDWidth
	}
	if v.FirstPrefix == "" {
		v.FirstPrefix = d.FirstPrefix
	}
	if v.LastPrefix == "" {
		v.LastPrefix = d.LastPrefix
	}
	return v
}

// Validate reports whether records can be drawn from the vocabulary
func (v Vocabulary) Validate() error {
	switch {
	case len(v.Skills) == 0:
		return fmt.Errorf("%w: no skills", ErrInvalidVocabulary)
	case len(v.Degrees) == 0:
		return fmt.Errorf("%w: no degrees", ErrInvalidVocabulary)
	case len(v.Schools) == 0:
		return fmt.Errorf("%w: no schools", ErrInvalidVocabulary)
	case v.MinSkills < 1:
		return fmt.Errorf("%w: min_skills %d < 1", ErrInvalidVocabulary, v.MinSkills)
	case v.MaxSkills < v.MinSkills:
		return fmt.Errorf("%w: max_skills %d < min_skills %d", ErrInvalidVocabulary, v.MaxSkills, v.MinSkills)
	case v.MaxSkills > len(v.Skills):
		return fmt.Errorf("%w: max_skills %d exceeds %d known skills", ErrInvalidVocabulary, v.MaxSkills, len(v.Skills))
	case v.IDWidth < 0:
		return fmt.Errorf("%w: negative id_width", ErrInvalidVocabulary)
	}

	seen := make(map[string]bool, len(v.Skills))
	for _, s := range v.Skills {
		if s == "" || seen[s] {
			return fmt.Errorf("%w: empty or duplicate skill %q", ErrInvalidVocabulary, s)
		}
		if strings.Contains(s, SkillSeparator) {
			return fmt.Errorf("%w: skill %q contains separator %q", ErrInvalidVocabulary, s, SkillSeparator)
		}
		seen[s] = true
	}
	return nil
}
