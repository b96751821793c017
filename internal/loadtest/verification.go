package loadtest

import "slices"

// missing returns the signups whose email is not listed under their
// activity in acts.
func missing(acts map[string]ActivityView, signups []Signup) []Signup {
	var out []Signup
	for _, s := range signups {
		a, ok := acts[s.Activity]
		if !ok || !slices.Contains(a.Participants, s.Email) {
			out = append(out, s)
		}
	}
	return out
}
