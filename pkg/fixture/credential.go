package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Credential types
const (
	CredentialAcademic     = "academic"
	CredentialProfessional = "professional"
)

// Verification states
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
)

var studyFields = []string{
	"Computer Science",
	"Software Engineering",
	"Computer Engineering",
	"Data Science",
	"Information Systems",
}

const credentialPrefix = "credential"

// Credential mirrors the credential payload accepted by the credentials API.
// Academic credentials carry Education and Institution, professional ones
// carry WorkExperience and Company.
type Credential struct {
	CredentialID       string `json:"credentialId"`
	CredentialType     string `json:"credentialType"`
	TalentID           string `json:"talentId"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Skills             string `json:"skills"`
	VerificationStatus string `json:"verificationStatus"`
	VerifiedBy         string `json:"verifiedBy,omitempty"`
	Education          string `json:"education,omitempty"`
	Institution        string `json:"institution,omitempty"`
	WorkExperience     string `json:"workExperience,omitempty"`
	Company            string `json:"company,omitempty"`
}

// CredentialGenerator generates one credential per talent record. The talent
// fields of record i follow the same rules as TalentGenerator.
type CredentialGenerator struct {
	talent *TalentGenerator
	rand   *rand.Rand
	faker  *gofakeit.Faker
}

// NewCredentialGenerator returns a credential generator drawing from vocab
func NewCredentialGenerator(vocab Vocabulary) *CredentialGenerator {
	return &CredentialGenerator{talent: NewTalentGenerator(vocab)}
}

func (g *CredentialGenerator) Init(r *rand.Rand) {
	g.rand = r
	g.talent.Init(r)
	g.faker = gofakeit.NewFaker(r, false)
}

func (g *CredentialGenerator) credentialID(i int) string {
	return fmt.Sprintf("%s%0*d", credentialPrefix, g.talent.Vocab.IDWidth, i)
}

// Credential returns the i-th credential
func (g *CredentialGenerator) Credential(i int) Credential {
	t := g.talent.Talent(i)
	c := Credential{
		CredentialID:       g.credentialID(i),
		TalentID:           t.ID,
		FirstName:          t.FirstName,
		LastName:           t.LastName,
		Skills:             t.Skills,
		VerificationStatus: StatusPending,
	}

	var issuer string
	if g.rand.IntN(2) == 0 {
		c.CredentialType = CredentialAcademic
		c.Education = t.Degree + " in " + Choice(g.rand, studyFields)
		c.Institution = t.School
		issuer = c.Institution
	} else {
		c.CredentialType = CredentialProfessional
		c.Company = g.faker.Company()
		c.WorkExperience = strconv.Itoa(between(g.rand, 1, 15)) + " years as " + g.faker.JobTitle()
		issuer = c.Company
	}

	if g.rand.IntN(2) == 0 {
		c.VerificationStatus = StatusVerified
		c.VerifiedBy = issuer
	}
	return c
}

func (g *CredentialGenerator) Record(i int) any {
	return g.Credential(i)
}

func (g *CredentialGenerator) Check(i int, raw json.RawMessage) error {
	var c Credential
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return violation(i, "", "not a credential object: %v", err)
	}

	vocab := g.talent.Vocab
	var errs []error
	expect := func(field, got, want string) {
		if got != want {
			errs = append(errs, violation(i, field, "got %q, want %q", got, want))
		}
	}
	expect("credentialId", c.CredentialID, g.credentialID(i))
	expect("talentId", c.TalentID, g.talent.ID(i))
	expect("firstName", c.FirstName, vocab.FirstPrefix+strconv.Itoa(i))
	expect("lastName", c.LastName, vocab.LastPrefix+strconv.Itoa(i))
	errs = append(errs, checkSkills(i, "skills", c.Skills, vocab)...)

	var issuer string
	switch c.CredentialType {
	case CredentialAcademic:
		degree, field, ok := strings.Cut(c.Education, " in ")
		if !ok || !slices.Contains(vocab.Degrees, degree) || field == "" {
			errs = append(errs, violation(i, "education", "malformed %q", c.Education))
		}
		errs = append(errs, checkOneOf(i, "institution", c.Institution, vocab.Schools))
		if c.Company != "" || c.WorkExperience != "" {
			errs = append(errs, violation(i, "company", "set on academic credential"))
		}
		issuer = c.Institution
	case CredentialProfessional:
		if c.Company == "" {
			errs = append(errs, violation(i, "company", "empty"))
		}
		if c.WorkExperience == "" {
			errs = append(errs, violation(i, "workExperience", "empty"))
		}
		if c.Education != "" || c.Institution != "" {
			errs = append(errs, violation(i, "institution", "set on professional credential"))
		}
		issuer = c.Company
	default:
		errs = append(errs, violation(i, "credentialType", "unknown type %q", c.CredentialType))
	}

	switch c.VerificationStatus {
	case StatusPending:
		expect("verifiedBy", c.VerifiedBy, "")
	case StatusVerified:
		expect("verifiedBy", c.VerifiedBy, issuer)
	default:
		errs = append(errs, violation(i, "verificationStatus", "unknown status %q", c.VerificationStatus))
	}
	return errors.Join(errs...)
}

func (g *CredentialGenerator) Description() string {
	return "Credential payloads: academic or professional, one per talent"
}

func (g *CredentialGenerator) DefaultCount() int {
	return g.talent.DefaultCount()
}
