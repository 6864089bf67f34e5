package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-crawler/internal/model"
)

func TestTeam_CardWithRoleAndLinkedIn(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="team-member">
		<img src="/jane.jpg">
		<h3>Jane Doe</h3>
		<p>CEO</p>
		<a href="https://www.linkedin.com/in/jane-doe">LinkedIn</a>
	</div></body></html>`

	members := Team(html, "https://acme.com/team")
	require.Len(t, members, 1)
	assert.Equal(t, "Jane Doe", members[0].Name)
	assert.Equal(t, "CEO", members[0].Role)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", members[0].LinkedIn)
	assert.Contains(t, members[0].Signals, model.SignalHasImage)
	assert.Contains(t, members[0].Signals, model.SignalHasLinkedIn)
	assert.Contains(t, members[0].Signals, model.SignalHasRole)
}

func TestTeam_SectionTitleRejected(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="team-member">
		<h2>Sales Marketing</h2>
	</div></body></html>`

	members := Team(html, "https://acme.com/team")
	assert.Empty(t, members)
}

func TestTeam_NameWithoutSignalsRejected(t *testing.T) {
	t.Parallel()

	// A bare name with no image, role, email, or LinkedIn is too weak.
	html := `<html><body><div class="team-member">
		<h3>Jane Doe</h3>
	</div></body></html>`

	members := Team(html, "https://acme.com/team")
	assert.Empty(t, members)
}

func TestTeam_HeroImageNotAMember(t *testing.T) {
	t.Parallel()

	// A hero banner pairs an image with a name-shaped site title. With no
	// card class present that container only carries one signal, which the
	// generic fallback must not accept.
	html := `<html><body><div class="hero">
		<img src="/facade.jpg">
		<h1>Hotel Du Parc</h1>
		<p>Un établissement de charme au coeur de la ville, à deux pas des jardins.</p>
	</div></body></html>`

	members := Team(html, "https://hotelduparc.fr")
	assert.Empty(t, members)
}

func TestTeam_GenericContainerNeedsTwoSignals(t *testing.T) {
	t.Parallel()

	html := `<html><body><section>
		<img src="/jane.jpg">
		<h3>Jane Doe</h3>
		<p>General Manager</p>
	</section></body></html>`

	members := Team(html, "https://acme.com/about")
	require.Len(t, members, 1)
	assert.Equal(t, "Jane Doe", members[0].Name)
	assert.Equal(t, "General Manager", members[0].Role)
	assert.Contains(t, members[0].Signals, model.SignalHasImage)
	assert.Contains(t, members[0].Signals, model.SignalHasRole)
}

func TestTeam_CardEmail(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="staff-member">
		<h3>Marie Dupont</h3>
		<a href="mailto:m.dupont@hotelacme.fr">écrire</a>
	</div></body></html>`

	members := Team(html, "https://hotelacme.fr/equipe")
	require.Len(t, members, 1)
	assert.Equal(t, "m.dupont@hotelacme.fr", members[0].Email)
	assert.Contains(t, members[0].Signals, model.SignalHasEmail)
}

func TestTeam_PublicationDirector(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Directeur de la publication : Jean Dupont</p></body></html>`

	members := Team(html, "https://hotelacme.fr/mentions-legales")
	require.Len(t, members, 1)
	assert.Equal(t, "Jean Dupont", members[0].Name)
	assert.Equal(t, "Directeur de la publication", members[0].Role)
	assert.Contains(t, members[0].Signals, model.SignalLegalNotice)
}

func TestTeam_DedupAcrossCards(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="team-member"><img src="a.jpg"><h3>Jane Doe</h3><p>CEO</p></div>
		<div class="team-member"><img src="b.jpg"><h3>Jane Doe</h3><p>CEO</p></div>
	</body></html>`

	members := Team(html, "https://acme.com/team")
	assert.Len(t, members, 1)
}

func TestTeam_FrenchRole(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="team-member">
		<img src="/p.jpg">
		<h3>Pierre Martin</h3>
		<p>Directeur Général</p>
	</div></body></html>`

	members := Team(html, "https://hotelacme.fr/equipe")
	require.Len(t, members, 1)
	assert.Equal(t, "Pierre Martin", members[0].Name)
	assert.Equal(t, "Directeur Général", members[0].Role)
}
