package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// RecordFields is the number of fields in a talent record
const RecordFields = 6

// Record is one talent fixture entry. It encodes as a JSON array of six strings:
// [id, first_name, last_name, skills, degree, school].
type Record struct {
	ID        string
	FirstName string
	LastName  string
	Skills    string
	Degree    string
	School    string
}

// Fields returns the record in wire order
func (r Record) Fields() [RecordFields]string {
	return [RecordFields]string{r.ID, r.FirstName, r.LastName, r.Skills, r.Degree, r.School}
}

// SkillList splits the joined skill field
func (r Record) SkillList() []string {
	return strings.Split(r.Skills, SkillSeparator)
}

func (r Record) MarshalJSON() ([]byte, error) {
	f := r.Fields()
	return marshalLiteral(f[:])
}

func (r *Record) UnmarshalJSON(data []byte) error {
	fields, err := decodeStrings(data)
	if err != nil {
		return err
	}
	if len(fields) != RecordFields {
		return fmt.Errorf("talent record has %d fields, want %d", len(fields), RecordFields)
	}
	*r = Record{
		ID:        fields[0],
		FirstName: fields[1],
		LastName:  fields[2],
		Skills:    fields[3],
		Degree:    fields[4],
		School:    fields[5],
	}
	return nil
}

// TalentGenerator generates the args.json talent records
type TalentGenerator struct {
	Vocab Vocabulary
	rand  *rand.Rand
}

// NewTalentGenerator returns a talent generator drawing from vocab
func NewTalentGenerator(vocab Vocabulary) *TalentGenerator {
	return &TalentGenerator{Vocab: vocab}
}

func (g *TalentGenerator) Init(r *rand.Rand) {
	g.rand = r
}

// ID returns the identifier of the i-th record
func (g *TalentGenerator) ID(i int) string {
	return fmt.Sprintf("%s%0*d", g.Vocab.IDPrefix, g.Vocab.IDWidth, i)
}

// Talent returns the i-th record. Identifier and names depend only on i; skills,
// degree and school are drawn from the random source in that order.
func (g *TalentGenerator) Talent(i int) Record {
	n := between(g.rand, g.Vocab.MinSkills, g.Vocab.MaxSkills)
	skills := Sample(g.rand, g.Vocab.Skills, n)

	return Record{
		ID:        g.ID(i),
		FirstName: g.Vocab.FirstPrefix + strconv.Itoa(i),
		LastName:  g.Vocab.LastPrefix + strconv.Itoa(i),
		Skills:    strings.Join(skills, SkillSeparator),
		Degree:    Choice(g.rand, g.Vocab.Degrees),
		School:    Choice(g.rand, g.Vocab.Schools),
	}
}

func (g *TalentGenerator) Record(i int) any {
	return g.Talent(i)
}

func (g *TalentGenerator) Check(i int, raw json.RawMessage) error {
	fields, err := decodeStrings(raw)
	if err != nil {
		return violation(i, "", "not an array of strings: %v", err)
	}
	if len(fields) != RecordFields {
		return violation(i, "", "%d fields, want %d", len(fields), RecordFields)
	}

	var errs []error
	if want := g.ID(i); fields[0] != want {
		errs = append(errs, violation(i, "id", "got %q, want %q", fields[0], want))
	}
	if want := g.Vocab.FirstPrefix + strconv.Itoa(i); fields[1] != want {
		errs = append(errs, violation(i, "first_name", "got %q, want %q", fields[1], want))
	}
	if want := g.Vocab.LastPrefix + strconv.Itoa(i); fields[2] != want {
		errs = append(errs, violation(i, "last_name", "got %q, want %q", fields[2], want))
	}
	errs = append(errs, checkSkills(i, "skills", fields[3], g.Vocab)...)
	errs = append(errs,
		checkOneOf(i, "degree", fields[4], g.Vocab.Degrees),
		checkOneOf(i, "school", fields[5], g.Vocab.Schools),
	)
	return errors.Join(errs...)
}

func (g *TalentGenerator) Description() string {
	return "Talent records: [id, first_name, last_name, skills, degree, school]"
}

func (g *TalentGenerator) DefaultCount() int {
	return 500
}
