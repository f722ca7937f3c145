package metadata

// Time layouts accepted by the timestamp and broadcast fields.
const (
	TimestampLayout = "2006-01-02 15:04:05 UTC"
	DateLayout      = "2006-01-02"
)

// Field name patterns. Match anchors them.
const (
	placeholderPattern = `\$[A-Z]+`
	localePattern      = `[a-zA-Z]{2}([_-][a-zA-Z]+)?`
	commaSepPattern    = `[\p{L}\p{N}_ ]+(?:, ?[\p{L}\p{N}_ ]+)*`
	relPathPattern     = `[^/]+(/[^/]+)*`
)

// Licenses lists the license codes a package may declare.
var Licenses = []string{
	"CC-BY", "CC-BY-ND", "CC-BY-NC", "CC-BY-ND-NC", "CC-BY-SA",
	"CC-BY-NC-SA", "GFDL", "OPL", "OCL", "ADL", "FAL", "PD", "OF",
	"ARL", "ON",
}

func licenseRule() Rule {
	values := make([]any, len(Licenses))
	for i, l := range Licenses {
		values[i] = l
	}
	return IsIn(values...)
}

// commonFields are shared by every generation.
func commonFields() map[string]Chain {
	return map[string]Chain{
		"title":     {Required(), Nonempty()},
		"url":       {Required(), Nonempty(), URL()},
		"timestamp": {Required(), Nonempty(), Timestamp(TimestampLayout)},
		"broadcast": {Required(), Nonempty(),
			Or(Timestamp(DateLayout), Match(placeholderPattern))},
		"license":      {Required(), licenseRule()},
		"language":     {OptionalNoDefault(), Nonempty(), Match(localePattern)},
		"keywords":     {OptionalNoDefault(), Nonempty(), Match(commaSepPattern)},
		"archive":      {Optional("core"), Nonempty()},
		"partner":      {OptionalNoDefault(), Nonempty()},
		"publisher":    {OptionalNoDefault(), Nonempty()},
		"is_partner":   {Optional(false), IsType(KindBool)},
		"is_sponsored": {Optional(false), IsType(KindBool)},
	}
}

func publisherMatchesPartner() Invariant {
	return matchingFields("publisher", "partner")
}

func generationZero() *Specification {
	fields := commonFields()
	fields["images"] = Chain{Optional(0), IsType(KindInt), Gte(0)}
	fields["multipage"] = Chain{Optional(false), IsType(KindBool)}
	fields["index"] = Chain{Optional(DefaultIndex), Match(relPathPattern)}
	fields["keep_formatting"] = Chain{Optional(false), IsType(KindBool)}
	return NewSpecification(0, fields, publisherMatchesPartner())
}

func generationOne() *Specification {
	fields := commonFields()
	fields[GenerationKey] = Chain{Optional(1), IsType(KindInt), IsIn(1)}
	fields["content"] = Chain{Optional(defaultContent(DefaultIndex, false)), IsType(KindObject)}
	return NewSpecification(1, fields, publisherMatchesPartner())
}

// defaultContent builds the generation 1 content block.
func defaultContent(main any, keepFormatting any) map[string]any {
	return map[string]any{
		"html": map[string]any{
			"main":            main,
			"keep_formatting": keepFormatting,
		},
	}
}
