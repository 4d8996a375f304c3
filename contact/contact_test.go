package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func kindOf(t *testing.T, err error) Kind {
	t.Helper()

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a *ValidationError, got %v", err)
	}

	return vErr.Kind
}

func TestValidatePhoneNumber(t *testing.T) {
	cases := []struct {
		description string
		phone       string
		wantKind    Kind
	}{
		{"accepts a plain digit string", "123456789", ""},
		{"accepts a single digit", "1", ""},
		{"rejects an empty phone", "", InvalidPhone},
		{"rejects spaces between digits", "123 456", InvalidPhone},
		{"rejects dashes", "123-456", InvalidPhone},
		{"rejects a country code prefix", "+34123456", InvalidPhone},
		{"rejects letters", "12345a", InvalidPhone},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := New("Juan", "Pérez", c.phone, "juan.perez@example.com").Validate()
			if c.wantKind == "" {
				assert.Nil(t, err)
				return
			}

			assert.Equal(t, c.wantKind, kindOf(t, err))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		description string
		email       string
		wantKind    Kind
	}{
		{"accepts name at domain with tld", "juan.perez@example.com", ""},
		{"accepts a minimal shape", "a@b.c", ""},
		{"accepts subdomains", "first.last@mail.example.org", ""},
		{"rejects a missing dot", "a@b", InvalidEmail},
		{"rejects a missing at sign", "ab.com", InvalidEmail},
		{"rejects an empty email", "", InvalidEmail},
		{"rejects a second at sign", "a@@b.c", InvalidEmail},
		{"rejects a trailing dot", "a@b.", InvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := New("Juan", "Pérez", "123456789", c.email).Validate()
			if c.wantKind == "" {
				assert.Nil(t, err)
				return
			}

			assert.Equal(t, c.wantKind, kindOf(t, err))
		})
	}
}

func TestValidateReportsFirstOffendingField(t *testing.T) {
	cases := []struct {
		description string
		record      Contact
		wantField   string
		wantKind    Kind
	}{
		{"everything empty blames the first name", New("", "", "", ""), "first name", EmptyField},
		{"whitespace only names count as empty", Contact{FirstName: "   ", LastName: "Pérez", PhoneNumber: "123", Email: "a@b.c"}, "first name", EmptyField},
		{"last name is checked second", New("Juan", "", "", ""), "last name", EmptyField},
		{"phone is checked third", New("Juan", "Pérez", "", ""), "phone number", InvalidPhone},
		{"email is checked last", New("Juan", "Pérez", "123456789", ""), "email", InvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := c.record.Validate()

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "expected a *ValidationError, got %v", err)
			assert.Equal(t, c.wantField, vErr.Field)
			assert.Equal(t, c.wantKind, vErr.Kind)
		})
	}
}

func TestNewTrimsNameFields(t *testing.T) {
	c := New("  Juan ", "\tPérez\n", "123456789", "juan.perez@example.com")

	assert.Equal(t, "Juan", c.FirstName)
	assert.Equal(t, "Pérez", c.LastName)
	assert.Nil(t, c.Validate())
}

func TestFromRow(t *testing.T) {
	c, err := FromRow(7, " Ana", "Ruiz ", "5551234", "ana@ruiz.dev")

	assert.Nil(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Ana", c.FirstName, "name fields should be trimmed on decode")
	assert.Equal(t, "Ruiz", c.LastName)

	for _, id := range []int64{0, -3} {
		_, err := FromRow(id, "Ana", "Ruiz", "5551234", "ana@ruiz.dev")
		assert.Equal(t, InvalidID, kindOf(t, err))
	}
}

func TestConversions(t *testing.T) {
	c, err := FromRow(2, "Juan", "Pérez", "123456789", "juan.perez@example.com")
	assert.Nil(t, err)

	assert.Equal(t,
		[]interface{}{"Juan", "Pérez", "123456789", "juan.perez@example.com"},
		c.Values(), "values should bind in column order")

	m := c.Map()
	assert.Equal(t, int64(2), m["id"])
	assert.Equal(t, "Juan", m["first_name"])
	assert.Equal(t, "Pérez", m["last_name"])
	assert.Equal(t, "123456789", m["phone_number"])
	assert.Equal(t, "juan.perez@example.com", m["email"])

	assert.Equal(t, "Juan Pérez", c.FullName())
}

func TestValidatorAcceptsCustomRules(t *testing.T) {
	strict := DefaultValidator()
	strict.PhoneNumber = RuleFunc(func(v string) bool { return len(v) >= 7 })

	short := New("Juan", "Pérez", "123", "juan.perez@example.com")

	assert.Nil(t, short.Validate(), "the stock rules accept any digit string")
	assert.Equal(t, InvalidPhone, kindOf(t, strict.Validate(short)))
}
