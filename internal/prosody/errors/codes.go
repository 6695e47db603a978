package errors

import "fmt"

// Tafila registry errors (TAF001-099)
const (
	// ErrEmptyTafilaName indicates a tafila definition without a name
	ErrEmptyTafilaName ErrorCode = "TAF001"
	// ErrInvalidTafilaPattern indicates a pattern containing characters other than '/' and 'o'
	ErrInvalidTafilaPattern ErrorCode = "TAF002"
	// ErrInvalidSyllableCount indicates a zero or inconsistent syllable count
	ErrInvalidSyllableCount ErrorCode = "TAF003"
	// ErrDuplicateTafila indicates two definitions sharing a name
	ErrDuplicateTafila ErrorCode = "TAF004"
	// ErrLetterMismatch indicates a letter structure whose length differs from the pattern
	ErrLetterMismatch ErrorCode = "TAF005"
)

// Rule errors (RUL100-199)
const (
	// ErrUndefinedRule indicates a meter position licensing an unknown rule
	ErrUndefinedRule ErrorCode = "RUL100"
	// ErrRuleFamilyMismatch indicates an ilah licensed as a zahaf or the reverse
	ErrRuleFamilyMismatch ErrorCode = "RUL101"
	// ErrRuleNotApplicable indicates a licensed rule that never changes the foot
	ErrRuleNotApplicable ErrorCode = "RUL102"
	// ErrInvalidRuleOutput indicates a rule producing an invalid pattern
	ErrInvalidRuleOutput ErrorCode = "RUL103"
)

// Meter grammar errors (MTR200-299)
const (
	// ErrUnknownTafila indicates a meter position referencing an unregistered tafila
	ErrUnknownTafila ErrorCode = "MTR200"
	// ErrDuplicateMeter indicates two meters sharing an id or a name
	ErrDuplicateMeter ErrorCode = "MTR201"
	// ErrEmptyMeter indicates a meter without positions
	ErrEmptyMeter ErrorCode = "MTR202"
	// ErrUnknownBaseMeter indicates a shortened variant pointing at a missing meter
	ErrUnknownBaseMeter ErrorCode = "MTR203"
	// ErrInvalidRank indicates a frequency rank below 1
	ErrInvalidRank ErrorCode = "MTR204"
)

// Pattern cache errors (CCH300-399)
const (
	// ErrEmptyMeterCache indicates a meter that produced no cached pattern
	ErrEmptyMeterCache ErrorCode = "CCH300"
)

// NewEmptyTafilaName creates a TAF001 error
func NewEmptyTafilaName(pattern string) *ConfigError {
	return newError(
		ErrEmptyTafilaName,
		"empty_tafila_name",
		CategoryTafila,
		pattern,
		fmt.Sprintf("Tafila with pattern %s has no name", quote(pattern)),
	)
}

// NewInvalidTafilaPattern creates a TAF002 error
func NewInvalidTafilaPattern(name, pattern string) *ConfigError {
	return newError(
		ErrInvalidTafilaPattern,
		"invalid_tafila_pattern",
		CategoryTafila,
		name,
		fmt.Sprintf("Tafila %s has invalid pattern %s", quote(name), quote(pattern)),
	).WithExpected("a non-empty sequence of '/' and 'o'").
		WithActual(pattern)
}

// NewInvalidSyllableCount creates a TAF003 error
func NewInvalidSyllableCount(name string, declared, derived int) *ConfigError {
	return newError(
		ErrInvalidSyllableCount,
		"invalid_syllable_count",
		CategoryTafila,
		name,
		fmt.Sprintf("Tafila %s declares %d syllables", quote(name), declared),
	).WithExpected(fmt.Sprintf("%d (one per moving letter, at least 1)", derived)).
		WithActual(fmt.Sprintf("%d", declared))
}

// NewDuplicateTafila creates a TAF004 error
func NewDuplicateTafila(name string) *ConfigError {
	return newError(
		ErrDuplicateTafila,
		"duplicate_tafila",
		CategoryTafila,
		name,
		fmt.Sprintf("Tafila %s is defined more than once", quote(name)),
	)
}

// NewLetterMismatch creates a TAF005 error
func NewLetterMismatch(name string, letters, symbols int) *ConfigError {
	return newError(
		ErrLetterMismatch,
		"letter_mismatch",
		CategoryTafila,
		name,
		fmt.Sprintf("Tafila %s has %d letters for %d pattern symbols", quote(name), letters, symbols),
	).WithSuggestion("Spell the foot with exactly one letter per prosodic symbol")
}

// NewUndefinedRule creates a RUL100 error
func NewUndefinedRule(meterName string, position int, rule string) *ConfigError {
	return newError(
		ErrUndefinedRule,
		"undefined_rule",
		CategoryRule,
		meterName,
		fmt.Sprintf("Meter %s licenses undefined rule %s", quote(meterName), quote(rule)),
	).WithPosition(position)
}

// NewRuleFamilyMismatch creates a RUL101 error
func NewRuleFamilyMismatch(meterName string, position int, rule, expected string) *ConfigError {
	return newError(
		ErrRuleFamilyMismatch,
		"rule_family_mismatch",
		CategoryRule,
		meterName,
		fmt.Sprintf("Rule %s is licensed in the wrong slot of meter %s", quote(rule), quote(meterName)),
	).WithPosition(position).
		WithExpected(expected).
		WithSuggestion("Ilal belong to the final position only; ziḥāfāt belong to the zahaf set")
}

// NewRuleNotApplicable creates a RUL102 error
func NewRuleNotApplicable(meterName string, position int, rule, tafila string) *ConfigError {
	return newError(
		ErrRuleNotApplicable,
		"rule_not_applicable",
		CategoryRule,
		meterName,
		fmt.Sprintf("Rule %s never applies to %s in meter %s", quote(rule), quote(tafila), quote(meterName)),
	).WithPosition(position).
		WithSuggestion("Remove the rule from the position or fix its precondition")
}

// NewInvalidRuleOutput creates a RUL103 error
func NewInvalidRuleOutput(meterName string, position int, rule, pattern string) *ConfigError {
	return newError(
		ErrInvalidRuleOutput,
		"invalid_rule_output",
		CategoryRule,
		meterName,
		fmt.Sprintf("Rule %s produced invalid pattern %s", quote(rule), quote(pattern)),
	).WithPosition(position)
}

// NewUnknownTafila creates a MTR200 error
func NewUnknownTafila(meterName string, position int, tafila string) *ConfigError {
	return newError(
		ErrUnknownTafila,
		"unknown_tafila",
		CategoryMeter,
		meterName,
		fmt.Sprintf("Meter %s references unknown tafila %s", quote(meterName), quote(tafila)),
	).WithPosition(position)
}

// NewDuplicateMeter creates a MTR201 error
func NewDuplicateMeter(meterName string, id int) *ConfigError {
	return newError(
		ErrDuplicateMeter,
		"duplicate_meter",
		CategoryMeter,
		meterName,
		fmt.Sprintf("Meter %s (id %d) is defined more than once", quote(meterName), id),
	)
}

// NewEmptyMeter creates a MTR202 error
func NewEmptyMeter(meterName string) *ConfigError {
	return newError(
		ErrEmptyMeter,
		"empty_meter",
		CategoryMeter,
		meterName,
		fmt.Sprintf("Meter %s has no positions", quote(meterName)),
	)
}

// NewUnknownBaseMeter creates a MTR203 error
func NewUnknownBaseMeter(meterName string, baseID int) *ConfigError {
	return newError(
		ErrUnknownBaseMeter,
		"unknown_base_meter",
		CategoryMeter,
		meterName,
		fmt.Sprintf("Variant %s points at unknown base meter %d", quote(meterName), baseID),
	)
}

// NewInvalidRank creates a MTR204 error
func NewInvalidRank(meterName string, rank int) *ConfigError {
	return newError(
		ErrInvalidRank,
		"invalid_rank",
		CategoryMeter,
		meterName,
		fmt.Sprintf("Meter %s has frequency rank %d", quote(meterName), rank),
	).WithExpected("a rank of 1 or more")
}

// NewEmptyMeterCache creates a CCH300 error
func NewEmptyMeterCache(meterName string) *ConfigError {
	return newError(
		ErrEmptyMeterCache,
		"empty_meter_cache",
		CategoryCache,
		meterName,
		fmt.Sprintf("Meter %s produced no cached pattern", quote(meterName)),
	)
}
