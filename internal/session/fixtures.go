package session

import "fmt"

// fixtureUsers is realistic sample data for demos and manual testing
var fixtureUsers = []struct {
	first, last, email string
}{
	{"Sarah", "Chen", "sarah.chen@email.com"},
	{"Marcus", "Williams", "marcus.w@company.com"},
	{"Alex", "Thompson", "alex.thompson@email.com"},
	{"Jennifer", "Rodriguez", "jen.rodriguez@company.com"},
	{"David", "Kim", "d.kim@startup.io"},
	{"Lisa", "Park", "lisa.park@consulting.com"},
	{"Robert", "Martinez", "r.martinez@venture.capital"},
	{"Emily", "Zhang", "emily.zhang@freelance.com"},
	{"Mike", "Johnson", "mike.j@social.com"},
	{"Rachel", "Green", "rachel.green@book.club"},
	{"Amanda", "Foster", "amanda@tech.recruiting"},
	{"Tom", "Anderson", "tom@tomsauto.com"},
}

// LoadFixtures adds the sample users to s through the normal add path
func LoadFixtures(s *Session) error {
	for _, f := range fixtureUsers {
		if _, err := s.Add(f.first, f.last, f.email); err != nil {
			return fmt.Errorf("adding fixture %s %s: %w", f.first, f.last, err)
		}
	}
	return nil
}
