package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/contact-crawler/internal/model"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"lowercased", "Contact@Hotel.FR", "contact@hotel.fr"},
		{"trailing punctuation", "info@acme.fr.", "info@acme.fr"},
		{"glued phone digits", "00hotel@operaliege.com", "hotel@operaliege.com"},
		{"whitespace trimmed", "  info@acme.fr  ", "info@acme.fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Email(tt.email))
		})
	}
}

func TestShouldFilterEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		email  string
		filter bool
	}{
		{"real address", "info@hotelacme.fr", false},
		{"noreply", "noreply@hotelacme.fr", true},
		{"test domain", "info@example.com", true},
		{"data protection authority", "dpo@cnil.fr", true},
		{"webmaster", "webmaster@hotelacme.fr", true},
		{"no at sign", "not-an-email", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.filter, ShouldFilterEmail(tt.email))
		})
	}
}

func TestEmailType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		context string
		want    model.EmailType
	}{
		{"sales local part", "sales@acme.fr", "", model.EmailSales},
		{"booking french", "reservation@hotel.fr", "", model.EmailBooking},
		{"support from context", "help-desk@acme.fr", "", model.EmailSupport},
		{"press from context", "contact@acme.fr", "service presse", model.EmailPress},
		{"billing french", "facturation@acme.fr", "", model.EmailBilling},
		{"default general", "info@acme.fr", "write to us", model.EmailGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EmailType(tt.email, tt.context))
		})
	}
}
