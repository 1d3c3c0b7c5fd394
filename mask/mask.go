// Package mask reformats raw form input into the Brazilian display patterns
// used on the registration form. Every function takes the whole current value
// of a field, not a single keystroke, and never fails: partial input yields a
// partial mask.
package mask

import "regexp"

var (
	nonDigit = regexp.MustCompile(`\D`)

	phoneAreaCode = regexp.MustCompile(`^(\d{2})(\d)`)
	phoneLastFour = regexp.MustCompile(`(\d)(\d{4})$`)

	cpfGroup       = regexp.MustCompile(`(\d{3})(\d)`)
	cpfCheckDigits = regexp.MustCompile(`(\d{3})(\d{1,2})`)

	cnpjRoot   = regexp.MustCompile(`^(\d{2})(\d)`)
	cnpjSecond = regexp.MustCompile(`^(\d{2})\.(\d{3})(\d)`)
	cnpjBranch = regexp.MustCompile(`\.(\d{3})(\d)`)
	cnpjCheck  = regexp.MustCompile(`(\d{4})(\d)`)

	overflow = regexp.MustCompile(`(-\d{2})\d+?$`)
)

// CPFLength is the digit count of a personal tax id. Anything longer is
// formatted as a company id.
const CPFLength = 11

// Digits strips everything that is not an ASCII digit.
func Digits(value string) string {
	return nonDigit.ReplaceAllString(value, "")
}

// Phone formats a national phone number as "(AA) NNNNN-NNNN".
func Phone(value string) string {
	v := Digits(value)
	v = replaceFirst(phoneAreaCode, v, "(${1}) ${2}")
	return replaceFirst(phoneLastFour, v, "${1}-${2}")
}

// TaxID formats up to 11 digits as a CPF ("###.###.###-##") and 12 or more as
// a CNPJ ("##.###.###/####-##"). Digits past the check digits are dropped.
//
// The switch is a plain digit-count threshold: once a twelfth digit is typed
// the value is a CNPJ until digits are removed again.
func TaxID(value string) string {
	v := Digits(value)

	if len(v) <= CPFLength {
		v = replaceFirst(cpfGroup, v, "${1}.${2}")
		v = replaceFirst(cpfGroup, v, "${1}.${2}")
		v = replaceFirst(cpfCheckDigits, v, "${1}-${2}")
		return replaceFirst(overflow, v, "${1}")
	}

	v = replaceFirst(cnpjRoot, v, "${1}.${2}")
	v = replaceFirst(cnpjSecond, v, "${1}.${2}.${3}")
	v = replaceFirst(cnpjBranch, v, ".${1}/${2}")
	v = replaceFirst(cnpjCheck, v, "${1}-${2}")
	return replaceFirst(overflow, v, "${1}")
}

// replaceFirst substitutes only the leftmost match of re, expanding template
// against it. regexp only ships replace-all helpers.
func replaceFirst(re *regexp.Regexp, s string, template string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}

	expanded := re.ExpandString(nil, template, s, loc)
	return s[:loc[0]] + string(expanded) + s[loc[1]:]
}
