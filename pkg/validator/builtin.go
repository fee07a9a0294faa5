package validator

import "context"

// passRule backs the sentinel rules. The engine short-circuits on a matching
// sentinel before invoking it, so it only runs when the sentinel did not match.
func passRule(context.Context, *Input) error { return nil }

// builtinRules lists every rule registered by InitializeDefaultRules and WithBuiltins.
func builtinRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		// sentinels
		RuleEmpty:    passRule,
		RuleNullable: passRule,
		RuleOptional: passRule,

		// presence
		"Required": requiredRule,
		"NotEmpty": notEmptyRule,

		// strings
		"MinLength":    minLengthRule,
		"MaxLength":    maxLengthRule,
		"Length":       lengthRule,
		"Matches":      matchesRule,
		"Alpha":        patternRule(alphaRegex, "validation.alpha"),
		"Alphanumeric": patternRule(alphanumericRegex, "validation.alphanumeric"),
		"Numeric":      patternRule(numericStringRegex, "validation.numeric_string"),
		"StartsWith":   startsWithRule,
		"EndsWith":     endsWithRule,
		"Contains":     containsRule,
		"SameAs":       sameAsRule,

		// formats
		"Email":      emailRule,
		"Url":        urlRule,
		"Uuid":       uuidRule,
		"Phone":      phoneRule,
		"Date":       dateRule,
		"DateAfter":  dateAfterRule,
		"DateBefore": dateBeforeRule,

		// passwords
		"StrongPassword":    strongPasswordRule,
		"NotCommonPassword": notCommonPasswordRule,

		// choices
		"In":    inRule,
		"NotIn": notInRule,

		// types
		"IsString":  isStringRule,
		"IsNumber":  isNumberRule,
		"IsInt":     isIntRule,
		"IsBoolean": isBooleanRule,
		"IsArray":   isArrayRule,
		"IsObject":  isObjectRule,

		// numbers
		"Min":         minRule,
		"Max":         maxRule,
		"Between":     betweenRule,
		"Positive":    positiveRule,
		"Negative":    negativeRule,
		"GreaterThan": greaterThanRule,
		"LessThan":    lessThanRule,
		"Equals":      equalsRule,
		"NotEquals":   notEqualsRule,

		// arrays
		"ArrayMinSize":  arrayMinSizeRule,
		"ArrayMaxSize":  arrayMaxSizeRule,
		"ArrayNotEmpty": arrayNotEmptyRule,
		"ArrayUnique":   arrayUniqueRule,
		"ArrayContains": arrayContainsRule,

		// transforms
		"Trim":    trimRule,
		"ToLower": toLowerRule,
		"ToUpper": toUpperRule,
		"ToInt":   toIntRule,
		"ToFloat": toFloatRule,
		"ToBool":  toBoolRule,

		// nested
		RuleValidateNested: nestedRule,
	}
}

func registerBuiltins(c *Catalog) {
	for name, fn := range builtinRules() {
		c.MustRegister(name, fn)
	}
}
