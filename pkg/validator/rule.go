package validator

// Rule pairs a check with the message reported when the check fails.
type Rule struct {
	Check   func() bool
	Message Message
}

// Apply evaluates rules in order, adds the message of every failed rule and
// reports whether all of them passed.
func (m *Messages) Apply(rules ...Rule) bool {
	ok := true
	for _, rule := range rules {
		if rule.Check == nil || rule.Check() {
			continue
		}
		m.Add(rule.Message)
		ok = false
	}
	return ok
}
