package seed

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/keshevplus/leadhub/internal/application/contact/usecases"
)

// Fixture is the YAML layout accepted by `seed --file`:
//
//	submissions:
//	  - name: Dana Levi
//	    email: dana@example.com
//	    phone: 050-123-4567
//	    subject: Pricing
//	    message: I would like a quote
type Fixture struct {
	Submissions []FixtureRow `yaml:"submissions"`
}

type FixtureRow struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Subject string `yaml:"subject"`
	Message string `yaml:"message"`
}

// LoadFixture decodes a fixture. Unknown keys are rejected so typos surface
// instead of seeding empty fields.
func LoadFixture(r io.Reader) ([]usecases.ContactPayload, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("fixture is empty")
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	out := make([]usecases.ContactPayload, 0, len(f.Submissions))
	for _, row := range f.Submissions {
		out = append(out, usecases.ContactPayload{
			Name:    row.Name,
			Email:   row.Email,
			Phone:   row.Phone,
			Subject: row.Subject,
			Message: row.Message,
		})
	}
	return out, nil
}
