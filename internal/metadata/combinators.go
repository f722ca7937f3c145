package metadata

// optionalRule short-circuits the chain for absent fields.
type optionalRule struct {
	def    any
	hasDef bool
}

func (o optionalRule) Check(f Field, _ Document) Outcome {
	if !f.Present {
		return Stop()
	}
	return Pass()
}

// Optional marks a field as optional with a default used by the template
// generator. An absent field stops the chain without failure; a present one
// is checked by the remaining rules.
func Optional(def any) Rule {
	return optionalRule{def: def, hasDef: true}
}

// OptionalNoDefault is Optional for fields the template leaves out unless
// the caller supplies a value.
func OptionalNoDefault() Rule {
	return optionalRule{}
}

// Or succeeds if either rule succeeds. When both fail the reasons are joined.
func Or(a, b Rule) Rule {
	return RuleFunc(func(f Field, doc Document) Outcome {
		first := a.Check(f, doc)
		if !first.Failed() {
			return first
		}
		second := b.Check(f, doc)
		if !second.Failed() {
			return second
		}
		reason := first.Reason
		if second.Reason != first.Reason {
			reason = first.Reason + " or " + second.Reason
		}
		return Fail(reason, first.Text()+" or "+second.Text())
	})
}

// Text returns the outcome message, falling back to the reason.
func (o Outcome) Text() string {
	if o.Message != "" {
		return o.Message
	}
	return o.Reason
}

// Chain is the ordered list of rules applied to one field.
type Chain []Rule

// Run evaluates the rules in order. It returns the first failure, or nil
// when every rule passed or a rule ended the chain early.
func (c Chain) Run(f Field, doc Document) *Failure {
	for _, rule := range c {
		out := rule.Check(f, doc)
		switch out.Status {
		case StatusEarlySuccess:
			return nil
		case StatusFailure:
			return &Failure{Field: f.Name, Reason: out.Reason, Message: out.Text()}
		}
	}
	return nil
}

// Required returns true if the chain starts with Required.
func (c Chain) Required() bool {
	if len(c) == 0 {
		return false
	}
	_, ok := c[0].(requiredRule)
	return ok
}

// Default returns the default declared by the chain's Optional rule.
func (c Chain) Default() (any, bool) {
	for _, rule := range c {
		if opt, ok := rule.(optionalRule); ok {
			return opt.def, opt.hasDef
		}
	}
	return nil, false
}

// Optional returns true if the chain contains an Optional rule.
func (c Chain) Optional() bool {
	for _, rule := range c {
		if _, ok := rule.(optionalRule); ok {
			return true
		}
	}
	return false
}
